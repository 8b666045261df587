package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mototransporte/internal/app/models/dto"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/logger"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// StatusInsufficientStorage is returned when the storage quota is exhausted.
const StatusInsufficientStorage = http.StatusInsufficientStorage

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps the application error taxonomy onto HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := describeError(c, err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		if gin.Mode() != gin.ReleaseMode {
			detail = detail.WithDebugInfo("%v", err)
		}
	}
	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}

func describeError(c *gin.Context, err error) (int, *dto.ErrorDetail) {
	var fieldErrs *validation.Errors
	var custom *apperrors.CustomError

	switch {
	case errors.As(err, &fieldErrs):
		tag := Locale(c)
		p := validation.NewPrinter(tag)
		details := dto.NewValidationErrors()
		for _, fe := range fieldErrs.Fields {
			details.AddError(fe.Field, fe.Message(p))
		}
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails(details.Errors)

	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		if errors.As(err, &custom) {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
			detail = detail.WithDetails(custom.Details)
		}
		return http.StatusConflict, detail

	case errors.Is(err, apperrors.ErrResourceNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		if errors.As(err, &custom) && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		return http.StatusNotFound, detail

	case errors.Is(err, apperrors.ErrConfirmationDeclined):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConfirmationRequired,
			"Destructive operation requires confirm=true").WithSeverity(dto.ErrorSeverityWarning)

	case errors.Is(err, apperrors.ErrImportFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeImportFailed, "Import failed").
			WithDetails(err.Error())

	case errors.Is(err, apperrors.ErrStorageFull):
		return StatusInsufficientStorage, dto.NewErrorDetail(dto.ErrorCodeStorageFull, "Storage quota exceeded").
			WithSeverity(dto.ErrorSeverityCritical)

	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeStorageError, "Storage failure")

	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
