package errors

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator. Field names in reported
// errors come from the toml tag so messages match the option keys users type.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks v against its `validate` struct tags.
// The first violation is reported as an INVALID_PARAMETER error naming the
// offending option key.
func ValidateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Wrap(ErrCodeInvalidParameter, err, "invalid parameters")
	}
	return fieldError(verrs[0])
}

func fieldError(fe validator.FieldError) *Error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return New(ErrCodeInvalidParameter, "%s is required", field)
	case "min", "gte":
		return New(ErrCodeInvalidParameter, "%s must be at least %s (got %v)", field, fe.Param(), fe.Value())
	case "max", "lte":
		return New(ErrCodeInvalidParameter, "%s must be at most %s (got %v)", field, fe.Param(), fe.Value())
	case "gt":
		return New(ErrCodeInvalidParameter, "%s must be greater than %s (got %v)", field, fe.Param(), fe.Value())
	case "lt":
		return New(ErrCodeInvalidParameter, "%s must be less than %s (got %v)", field, fe.Param(), fe.Value())
	case "oneof":
		return New(ErrCodeInvalidParameter, "%s must be one of [%s] (got %v)", field, fe.Param(), fe.Value())
	case "len":
		return New(ErrCodeInvalidParameter, "%s must have exactly %s entries", field, fe.Param())
	case "unique":
		return New(ErrCodeInvalidParameter, "%s must not contain duplicates", field)
	case "gtefield":
		return New(ErrCodeInvalidParameter, "%s must not be less than %s", field, fe.Param())
	default:
		return New(ErrCodeInvalidParameter, "%s failed %q validation", field, fe.Tag())
	}
}

// ValidateDimensions checks a canvas size against per-side and total pixel
// limits. Non-positive sizes are INVALID_INPUT; oversized canvases are
// RESOURCE_BOUND.
func ValidateDimensions(width, height, maxSide, maxPixels int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive (got %dx%d)", width, height)
	}
	if width > maxSide || height > maxSide {
		return New(ErrCodeResourceBound, "dimensions %dx%d exceed the %d pixel side limit", width, height, maxSide)
	}
	if int64(width)*int64(height) > int64(maxPixels) {
		return New(ErrCodeResourceBound, "canvas of %d pixels exceeds the %d pixel limit", width*height, maxPixels)
	}
	return nil
}

// ValidateFilename validates an output file name for safety.
// It ensures the name is a simple basename without path components.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "filename %q is reserved", name)
	}

	return nil
}

// ValidateKey checks that a registry key (mode or theme name) is a short
// lowercase identifier.
func ValidateKey(kind, key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidInput, "%s too long (max 64 characters)", kind)
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' && r != '-' {
			return New(ErrCodeInvalidInput, "%s %q contains invalid character %q", kind, key, r)
		}
	}
	return nil
}
