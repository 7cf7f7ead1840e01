// Package validation validates request payloads with go-playground/validator
// and converts failures into *domain.ValidationError.
package validation

import (
	"LinkHub-Backend/internal/domain"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// allowedSchemes are the URL schemes a public link may point to.
var allowedSchemes = map[string]struct{}{
	"http":     {},
	"https":    {},
	"mailto":   {},
	"tel":      {},
	"whatsapp": {},
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report json names instead of Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = validate.RegisterValidation("publicurl", validatePublicURL)
		_ = validate.RegisterValidation("platform", validatePlatform)
		_ = validate.RegisterValidation("density", validateDensity)
	})

	return validate
}

// IsPublicURL reports whether raw is an absolute URL with an allowed scheme.
func IsPublicURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	if _, ok := allowedSchemes[strings.ToLower(u.Scheme)]; !ok {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	default:
		return u.Opaque != "" || u.Host != "" || u.Path != ""
	}
}

func validatePublicURL(fl validator.FieldLevel) bool {
	return IsPublicURL(fl.Field().String())
}

func validatePlatform(fl validator.FieldLevel) bool {
	return domain.Platform(fl.Field().String()).Valid()
}

func validateDensity(fl validator.FieldLevel) bool {
	return domain.Density(fl.Field().String()).Valid()
}

// Struct validates s and returns nil or a *domain.ValidationError.
func Struct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError("body", err.Error())
	}

	vErr := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		vErr.Fields[fieldPath(fe)] = translateError(fe)
	}
	return vErr
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var errorMessageTemplates = map[string]string{
	"required":  "is required",
	"publicurl": "must be an http, https, mailto, tel or whatsapp URL",
	"platform":  "is not a supported platform",
	"density":   "must be compact, comfortable or relaxed",
	"uuid":      "must be a valid id",
}

func translateError(fe validator.FieldError) string {
	if msg, ok := errorMessageTemplates[fe.Tag()]; ok {
		return msg
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "len":
		return fmt.Sprintf("must contain exactly %s items", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
