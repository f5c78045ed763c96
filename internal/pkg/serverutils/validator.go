package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries a 400-worthy message built from the failed fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return &ValidationError{Message: "validation failed: " + strings.Join(fields, ", ")}
		}
		return err
	}
	return nil
}
