package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its validate tags and converts
// violations into a 400 with field-level detail.
func ValidateRequest(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fields []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields = append(fields, fieldErr.Field()+" failed on '"+fieldErr.Tag()+"'")
	}
	return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+strings.Join(fields, ", "))
}
