package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mototransporte/internal/app/models/dto"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/middleware"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
)

// maxImportBytes bounds the accepted import document.
const maxImportBytes = 32 << 20

// BackupController handles export, import and bulk clear
type BackupController struct {
	backupService services.BackupService
}

// NewBackupController creates a new BackupController
func NewBackupController(backupService services.BackupService) *BackupController {
	return &BackupController{
		backupService: backupService,
	}
}

// Export streams the export document as a file download
func (c *BackupController) Export(ctx *gin.Context) {
	doc, name, err := c.backupService.Export(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Data(http.StatusOK, "application/json", raw)
}

// Import replaces the collections present in the request body
func (c *BackupController) Import(ctx *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBytes))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("could not read import body"))
		return
	}

	counts, err := c.backupService.Import(ctx.Request.Context(), raw)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ImportResponse{Collections: counts},
		Timestamp: time.Now(),
	})
}

// Clear removes every collection. The client confirms with confirm=true.
func (c *BackupController) Clear(ctx *gin.Context) {
	var confirm dto.ConfirmRequest
	if !middleware.BindQuery(ctx, &confirm) {
		return
	}

	reqCtx := services.WithConfirmation(ctx.Request.Context(), confirm.Confirm)
	if err := c.backupService.ClearAll(reqCtx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "all data cleared"},
		Timestamp: time.Now(),
	})
}
