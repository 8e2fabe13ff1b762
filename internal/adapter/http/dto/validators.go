package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"banking-ledger/pkg/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

// maxIntegerDigits bounds amounts to fit NUMERIC(14,2).
const maxIntegerDigits = 12

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_username", validateUsername)
	}
}

// validateUsername allows alphanumeric, underscore, dash, and dot.
func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// ParseAmount converts the wire representation of a monetary amount into a
// decimal. It rejects non-numeric input, non-positive values, more than two
// fraction digits, and values too large for the ledger columns.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	if !d.IsPositive() {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	if len(d.Truncate(0).String()) > maxIntegerDigits {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	return d, nil
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				s := sanitize(elem.String())
				elem.SetString(s)
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
