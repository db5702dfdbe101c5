// Package response renders the API's JSON envelope:
// {success, message, data?, errors?}.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ValidationFailed renders field-level errors as a 422.
func ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// BindError maps a gin binding failure to the envelope: validator tag
// violations become a 422 with per-field messages, everything else
// (malformed JSON, wrong types) a generic 400.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fieldErrors[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		ValidationFailed(c, fieldErrors)
		return
	}
	Error(c, http.StatusBadRequest, "Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "difficulty":
		return "difficulty must be one of: easy, medium, hard"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
