package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("trigger", ValidateTriggerRule)
	}
}

// ValidateTriggerRule accepts the two ways an analysis run can start.
func ValidateTriggerRule(fl validator.FieldLevel) bool {
	trigger := fl.Field().String()
	return trigger == "manual" || trigger == "automatic"
}
