package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/mototransporte/internal/app/models/dto"
)

// BindQuery binds the query string into obj. On failure it writes a 400
// response and returns false.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := dto.NewValidationErrors()
			for _, fe := range fieldErrs {
				details.AddError(fe.Field(), formatValidationError(fe))
			}
			errorDetail = errorDetail.WithDetails(details.Errors)
		} else {
			errorDetail = errorDetail.WithDetails(err.Error())
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
