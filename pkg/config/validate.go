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
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report yaml field names so violations match the document the user wrote
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"platform":     platformValidation,
		"dryrun":       dryRunValidation,
		"updatetype":   updateTypeValidation,
		"repository":   repositoryValidation,
		"branchprefix": branchPrefixValidation,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
		}
	}
	return v
}

func platformValidation(fl validator.FieldLevel) bool {
	return PlatformKind(fl.Field().String()).IsValid()
}

func dryRunValidation(fl validator.FieldLevel) bool {
	return DryRunMode(fl.Field().String()).IsValid()
}

func updateTypeValidation(fl validator.FieldLevel) bool {
	return UpdateType(fl.Field().String()).IsValid()
}

func repositoryValidation(fl validator.FieldLevel) bool {
	_, err := git.ParseRepository(fl.Field().String())
	return err == nil
}

func branchPrefixValidation(fl validator.FieldLevel) bool {
	return ValidBranchPrefix(fl.Field().String())
}

// Validate checks the invariants of a configuration without parsing it.
// It returns nil or a *ValidationError listing every violation.
func Validate(cfg AutomationConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe), describe(fe))
	}
	return verr
}

// fieldPath strips the root struct name from the validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entry", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "unique":
		return "must not contain duplicates"
	case "email":
		return fmt.Sprintf("%q is not a well-formed email address", fe.Value())
	case "repository":
		return fmt.Sprintf("%q is not a well-formed owner/name repository identifier", fe.Value())
	case "branchprefix":
		return fmt.Sprintf("%q is not a valid branch name prefix", fe.Value())
	case "platform":
		return fmt.Sprintf("unsupported platform %q, must be one of [%s]", fe.Value(), joinValues(PlatformKinds()))
	case "dryrun":
		return fmt.Sprintf("unsupported dry-run mode %q, must be one of [%s]", fe.Value(), joinValues(DryRunModes()))
	case "updatetype":
		return fmt.Sprintf("unsupported update type %q, must be one of [%s]", fe.Value(), joinValues(UpdateTypes()))
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// ValidBranchPrefix reports whether prefix can start a git branch name,
// following the rules of git check-ref-format
func ValidBranchPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	if strings.HasPrefix(prefix, "/") || strings.HasPrefix(prefix, "-") {
		return false
	}
	if strings.Contains(prefix, "..") || strings.Contains(prefix, "//") || strings.Contains(prefix, "@{") {
		return false
	}
	for _, r := range prefix {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(" ~^:?*[\\", r) {
			return false
		}
	}
	for _, component := range strings.Split(prefix, "/") {
		if strings.HasPrefix(component, ".") || strings.HasSuffix(component, ".lock") {
			return false
		}
	}
	return !strings.HasSuffix(prefix, ".")
}
