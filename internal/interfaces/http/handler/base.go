// Package handler holds the gin handlers of the fleet HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/futurevend/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleError converts an error into the response envelope.
// Domain errors keep their code, message and field; anything else is logged and reported as internal.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		message := domainErr.Message
		if code == dto.ErrCodeInternal {
			message = "An unexpected error occurred"
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewFieldErrorResponse(code, message, domainErr.Field, middleware.GetRequestID(c)))
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("Request failed", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindJSON binds the request body into req and answers the request when it cannot.
// It reports whether the handler may proceed.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	requestID := middleware.GetRequestID(c)
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxBytesErr):
		h.Error(c, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		h.Error(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(dto.ErrCodeValidation, "Invalid value", typeErr.Field, requestID))
	default:
		if details := middleware.ValidationDetails(err); details != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
			return false
		}
		// Custom unmarshalers report their own messages
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			h.HandleError(c, domainErr)
			return false
		}
		h.Error(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
	}
	return false
}

// bindList binds paging query parameters into a normalized filter
func (h *BaseHandler) bindList(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Invalid query parameters", middleware.GetRequestID(c), details))
		} else {
			h.BadRequest(c, "Invalid query parameters")
		}
		return shared.Filter{}, false
	}
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}.Normalize(), true
}

// tenantAndID returns the authenticated tenant and the :id path parameter
func (h *BaseHandler) tenantAndID(c *gin.Context, resource string) (uuid.UUID, uuid.UUID, bool) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+resource+" ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, id, true
}

func (h *BaseHandler) tenant(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return tenantID, true
}
