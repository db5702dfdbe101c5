package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lezzetli/recipe-api/internal/models"
)

// RegisterValidators wires custom rules into gin's validator so request
// structs can use them in binding tags. Call once before routing requests.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			return models.ValidDifficulty(fl.Field().String())
		})
	}
}
