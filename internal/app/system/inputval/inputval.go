// Package inputval validates and sanitizes request input.
//
// Validate walks a struct's `validate` tags (required, max=N for strings)
// and collects field errors keyed by the `label` tag. Sanitize strips any
// markup from free-text fields (remarks, names) before they are stored.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Result accumulates validation failures by field label.
type Result struct {
	Errors map[string]string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns one failure message, for APIs that report a single error.
func (r Result) First() string {
	for _, msg := range r.Errors {
		return msg
	}
	return ""
}

func (r *Result) add(label, msg string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[label] = msg
}

// Validate checks input's string fields against their `validate` tags.
// Supported rules: "required", "max=N". Non-string fields and fields without
// a validate tag are skipped.
func Validate(input any) Result {
	var res Result

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || field.Type.Kind() != reflect.String {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := strings.TrimSpace(v.Field(i).String())

		for _, rule := range strings.Split(tag, ",") {
			switch {
			case rule == "required":
				if value == "" {
					res.add(label, label+" is required")
				}
			case strings.HasPrefix(rule, "max="):
				n, err := strconv.Atoi(rule[len("max="):])
				if err == nil && len(value) > n {
					res.add(label, fmt.Sprintf("%s must be at most %d characters", label, n))
				}
			}
		}
	}
	return res
}

// strict strips all HTML elements and attributes.
var strict = bluemonday.StrictPolicy()

// Sanitize removes any markup from a free-text value and trims whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
