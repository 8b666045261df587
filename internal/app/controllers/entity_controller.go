package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/models/dto"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/middleware"
	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// EntityController exposes one entity service over HTTP
type EntityController[T models.Entity] struct {
	service services.EntityService[T]
	name    string
}

// NewEntityController creates a controller for the entity called name
func NewEntityController[T models.Entity](service services.EntityService[T], name string) *EntityController[T] {
	return &EntityController[T]{
		service: service,
		name:    name,
	}
}

// Register mounts the CRUD routes on group
func (c *EntityController[T]) Register(group *gin.RouterGroup) {
	group.GET("", c.List)
	group.GET("/:id", c.Get)
	group.POST("", c.Create)
	group.PATCH("/:id", c.Update)
	group.PUT("/:id", c.Update)
	group.DELETE("/:id", c.Delete)
}

// List returns the cached records, optionally filtered and paginated
func (c *EntityController[T]) List(ctx *gin.Context) {
	var query dto.ListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	var items []T
	if strings.TrimSpace(query.Search) == "" {
		items = c.service.List()
	} else {
		items = c.service.Search(query.Search, splitFields(query.Fields)...)
	}

	resp := dto.APIResponse{Data: items, Timestamp: time.Now()}
	if page, size, ok := helpers.ParsePaginationParams(ctx); ok {
		info := helpers.NewPaginationInfo(len(items), page, size)
		resp.Data = helpers.Paginate(items, page, size)
		resp.Pagination = &info
	}
	ctx.JSON(http.StatusOK, resp)
}

// splitFields accepts both repeated and comma separated field names.
func splitFields(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, f := range strings.Split(r, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

// Get returns one record by id
func (c *EntityController[T]) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// Create validates the payload and stores a new record
func (c *EntityController[T]) Create(ctx *gin.Context) {
	var fields validation.Fields
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+c.name+" data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// Update merges the payload into the stored record
func (c *EntityController[T]) Update(ctx *gin.Context) {
	var patch validation.Fields
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+c.name+" data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// Delete removes a record. The client confirms with confirm=true.
func (c *EntityController[T]) Delete(ctx *gin.Context) {
	var confirm dto.ConfirmRequest
	if !middleware.BindQuery(ctx, &confirm) {
		return
	}

	reqCtx := services.WithConfirmation(ctx.Request.Context(), confirm.Confirm)
	if err := c.service.Delete(reqCtx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: c.name + " deleted"},
		Timestamp: time.Now(),
	})
}
