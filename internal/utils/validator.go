// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("orgname", validateOrgName)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateOrgName checks that the field names one of the organizations
// registered on the pharma network.
func validateOrgName(fl validator.FieldLevel) bool {
	_, ok := pharma.OrgByName[fl.Field().String()]
	return ok
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "orgname":
		return e.Field() + " is an invalid organization name to submit transactions on pharma network"
	default:
		return e.Field() + " is invalid"
	}
}
