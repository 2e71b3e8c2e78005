// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/shayne/infinite/internal/color"
)

// ValidationError reports the first theme field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("argv", func(fl validator.FieldLevel) bool {
			if fl.Field().Len() == 0 {
				return false
			}
			return strings.TrimSpace(fl.Field().Index(0).String()) != ""
		})
		validateInst = v
	})
	return validateInst
}

func (t Theme) Validate() error {
	if err := validatorInstance().Struct(t); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			field := fieldName(fe)
			return &ValidationError{Field: field, Message: fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), Err: err}
		}
		return &ValidationError{Message: err.Error(), Err: err}
	}
	if err := color.ValidateStops(t.Color.Accent.Stops); err != nil {
		return &ValidationError{Field: "color.accent.stops", Message: err.Error(), Err: err}
	}
	for i, row := range t.Rows {
		if err := color.ValidateStops(row.Color.Accent.Stops); err != nil {
			return &ValidationError{Field: fmt.Sprintf("rows[%d].color.accent.stops", i), Message: err.Error(), Err: err}
		}
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
