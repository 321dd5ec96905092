package handler

import (
	"context"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResourceService is the tenant-scoped CRUD contract every fleet record kind offers.
// Req is the create/replace body, Stored what a write returns, View the single-record
// read model and Item the list read model.
type ResourceService[Req, Stored, View, Item any] interface {
	Create(ctx context.Context, tenantID uuid.UUID, req Req) (*Stored, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*View, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req Req) (*Stored, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ResourceHandler serves POST, GET list, GET, PUT and DELETE for one record kind
type ResourceHandler[Req, Stored, View, Item any] struct {
	BaseHandler
	name    string
	service ResourceService[Req, Stored, View, Item]
}

func newResourceHandler[Req, Stored, View, Item any](name string, service ResourceService[Req, Stored, View, Item]) *ResourceHandler[Req, Stored, View, Item] {
	return &ResourceHandler[Req, Stored, View, Item]{name: name, service: service}
}

// RegisterRoutes mounts the handler under path
func (h *ResourceHandler[Req, Stored, View, Item]) RegisterRoutes(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	g := rg.Group(path)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

// Create stores a new record. 201 on success, 409 when a unique key is taken.
func (h *ResourceHandler[Req, Stored, View, Item]) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}

	stored, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, stored)
}

// GetByID returns one record of the tenant, 404 otherwise
func (h *ResourceHandler[Req, Stored, View, Item]) GetByID(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, h.name)
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// List returns a page of the tenant's records
func (h *ResourceHandler[Req, Stored, View, Item]) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update replaces a record's fields
func (h *ResourceHandler[Req, Stored, View, Item]) Update(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, h.name)
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}

	stored, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stored)
}

// Delete removes a record. 409 REFERENTIAL_BLOCK while other records still use it.
func (h *ResourceHandler[Req, Stored, View, Item]) Delete(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, h.name)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
