package crud

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
)

// requiredMessageKey explains a missing required value.
const requiredMessageKey = "required"

// Validator checks submitted values against field rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a validator.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Check validates values and returns a VALIDATION_FAILED error whose metadata
// maps each failing field to the catalog key explaining it. Values are
// trimmed before checking.
func (v *Validator) Check(ctx context.Context, fields []Field, values map[string]string) error {
	data := map[string]any{}
	rules := map[string]any{}
	failed := map[string]string{}

	for _, field := range fields {
		if field.IsFile() {
			continue
		}
		raw := strings.TrimSpace(values[field.Name])
		rule := fieldRule(field)
		if rule == "" {
			continue
		}
		if field.Integer {
			if raw == "" {
				data[field.Name] = int64(0)
			} else {
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					failed[field.Name] = messageKey(field, "integer")
					continue
				}
				data[field.Name] = n
			}
		} else {
			data[field.Name] = raw
		}
		rules[field.Name] = rule
	}

	for name, result := range v.v.ValidateMapCtx(ctx, data, rules) {
		failed[name] = messageKey(fieldByName(fields, name), failedTag(result))
	}
	if len(failed) == 0 {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeValidationFailed, "form validation failed", failed)
}

func fieldRule(field Field) string {
	parts := make([]string, 0, 2)
	if field.Required {
		parts = append(parts, "required")
	} else if field.Rule != "" {
		parts = append(parts, "omitempty")
	}
	if field.Rule != "" {
		parts = append(parts, field.Rule)
	}
	return strings.Join(parts, ",")
}

func failedTag(result any) string {
	if errs, ok := result.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Tag()
	}
	return ""
}

func messageKey(field Field, tag string) string {
	if tag == "required" || field.MessageKey == "" {
		return requiredMessageKey
	}
	return field.MessageKey
}

func fieldByName(fields []Field, name string) Field {
	for _, field := range fields {
		if field.Name == name {
			return field
		}
	}
	return Field{Name: name}
}
