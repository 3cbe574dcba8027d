/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema classifies structural failures: missing fields, wrong types,
	// values outside an enumeration. Use errors.Is(err, ErrSchema).
	ErrSchema = errors.New("schema error")
	// ErrValidation classifies semantic constraint violations.
	// Use errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation error")
)

// SchemaError reports a document whose shape does not match the schema
type SchemaError struct {
	// Field is the path of the offending field (e.g. "rules[0].minStabilityDays"),
	// empty when the document itself is malformed
	Field string
	// Line is the 1-based source line, 0 when unknown
	Line int
	// Reason describes the mismatch
	Reason string
	// Err is the underlying decoder error, if any
	Err error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Field != "" {
		fmt.Fprintf(&b, " at %q", e.Field)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// FieldViolation is a single failed constraint
type FieldViolation struct {
	// Field is the path of the offending field (e.g. "targetRepositories[1]")
	Field string
	// Reason describes the failed constraint
	Reason string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError reports every semantic constraint a configuration violates
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasField reports whether any violation concerns field
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}
