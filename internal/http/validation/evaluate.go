package validation

import (
	"fmt"
	"unicode/utf8"
)

// CheckParams evaluates the schema's path-parameter rules against get (the
// router's parameter lookup). It fails fast: the first offending parameter is
// returned alone, so a malformed identifier never reaches a lookup.
func (s Schema) CheckParams(get func(name string) string) []FieldError {
	for _, r := range s.Params {
		v := get(r.Field)
		if v == "" {
			if r.Required {
				return []FieldError{required(r.Field)}
			}
			continue
		}
		if fe := r.check(v); fe != nil {
			return []FieldError{*fe}
		}
	}
	return nil
}

// CheckBody evaluates the schema's body rules against a decoded JSON object.
// Unlike parameter checks it is exhaustive: every violation is itemized,
// including fields the schema does not declare.
func (s Schema) CheckBody(body map[string]any) []FieldError {
	var out []FieldError

	declared := make(map[string]Rule, len(s.Body))
	for _, r := range s.Body {
		declared[r.Field] = r
	}

	for _, r := range s.Body {
		raw, present := body[r.Field]
		if !present || raw == nil {
			if r.Required {
				out = append(out, required(r.Field))
			}
			continue
		}
		v, isStr := raw.(string)
		if !isStr {
			out = append(out, FieldError{r.Field, fmt.Sprintf("%q must be a string", r.Field)})
			continue
		}
		// A present-but-empty string does not satisfy a required field.
		if v == "" && r.Required {
			out = append(out, FieldError{r.Field, fmt.Sprintf("%q is not allowed to be empty", r.Field)})
			continue
		}
		if fe := r.check(v); fe != nil {
			out = append(out, *fe)
		}
	}

	for name := range body {
		if _, ok := declared[name]; !ok {
			out = append(out, FieldError{name, fmt.Sprintf("%q is not allowed", name)})
		}
	}
	return out
}

// check applies the rule's length and format constraints to a present value.
func (r Rule) check(v string) *FieldError {
	if n := utf8.RuneCountInString(v); (r.MinLen > 0 && n < r.MinLen) || (r.MaxLen > 0 && n > r.MaxLen) {
		return &FieldError{r.Field, fmt.Sprintf("%q length must be between %d and %d characters", r.Field, r.MinLen, r.MaxLen)}
	}
	switch r.Format {
	case FormatEmail:
		if !emailRE.MatchString(v) {
			return &FieldError{r.Field, fmt.Sprintf("%q must be a valid email", r.Field)}
		}
	case FormatURL:
		if !urlRE.MatchString(v) {
			return &FieldError{r.Field, fmt.Sprintf("%q must be a valid URL", r.Field)}
		}
	case FormatHexID:
		if !validHexID(v) {
			return &FieldError{r.Field, fmt.Sprintf("%q must be a 24-character hex id", r.Field)}
		}
	}
	return nil
}

func required(field string) FieldError {
	return FieldError{field, fmt.Sprintf("%q is required", field)}
}
