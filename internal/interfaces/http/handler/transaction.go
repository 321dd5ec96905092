package handler

import (
	"context"
	"net/http"

	salesapp "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/futurevend/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionService is the tenant view of recorded sales
type TransactionService interface {
	List(ctx context.Context, tenantID uuid.UUID, f salesapp.TransactionListFilter) ([]sales.TransactionListItem, int64, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.TransactionDetails, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// TransactionHandler serves /transactions
type TransactionHandler struct {
	BaseHandler
	service TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RegisterRoutes mounts the handler under path
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	g := rg.Group(path)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.DELETE("/:id", h.Delete)
	return g
}

// List returns a page of the tenant's sales, optionally filtered by device,
// payment type and currency
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var f salesapp.TransactionListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Invalid query parameters", middleware.GetRequestID(c), details))
			return
		}
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	items, total, err := h.service.List(c.Request.Context(), tenantID, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	paging := shared.Filter{Page: f.Page, PageSize: f.PageSize}.Normalize()
	h.SuccessWithMeta(c, items, total, paging.Page, paging.PageSize)
}

// GetByID returns the details of one sale
func (h *TransactionHandler) GetByID(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}

	details, err := h.service.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// Delete removes a sale. Sales are never referenced, so this is never blocked.
func (h *TransactionHandler) Delete(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
