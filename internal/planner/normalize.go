package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MalformedError reports generator output that is not a valid plan document.
// Detail is the decode or validation diagnostic.
type MalformedError struct {
	Detail string
	Err    error
}

func (e *MalformedError) Error() string {
	return "malformed plan document: " + e.Detail
}

func (e *MalformedError) Unwrap() error { return e.Err }

func malformed(err error, format string, args ...interface{}) *MalformedError {
	return &MalformedError{Detail: fmt.Sprintf(format, args...), Err: err}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so the detail matches what the generator sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimLeftFunc(s, isFenceTagRune)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+'
}

// Normalize decodes raw generator output into a validated PlanDocument.
// Any failure is returned as *MalformedError.
func Normalize(raw string) (*PlanDocument, error) {
	clean := StripFences(raw)
	if clean == "" {
		return nil, malformed(nil, "empty response")
	}

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.DisallowUnknownFields()

	var doc PlanDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, malformed(err, "decode: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed(err, "unexpected data after the JSON document")
	}

	if err := validate.Struct(&doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, malformed(err, "%s", describe(verrs))
		}
		return nil, malformed(err, "validate: %v", err)
	}
	return &doc, nil
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", path, ruleMessage(fe)))
	}
	return strings.Join(parts, "; ")
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "allows at most " + fe.Param() + " entries"
		}
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}
