package validatorx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex

	// local 0xxxxxxxxx or international +84xxxxxxxxx mobile numbers
	phonePattern = regexp.MustCompile(`^(\+84|0)[0-9]{9,10}$`)
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
	_ = v.RegisterValidation("phone", func(fl gpvalidator.FieldLevel) bool {
		return phonePattern.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// Describe flattens validation errors into "Field: tag" pairs for logs and
// client messages. Non-validation errors are returned as-is.
func Describe(err error) string {
	var verrs gpvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
