package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricescout/backend/internal/domain"
)

// ProductAggregator runs a multi-source product search
type ProductAggregator interface {
	Aggregate(ctx context.Context, req *domain.SearchRequest) (*domain.AggregateResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	aggregator ProductAggregator
}

// NewHandler creates a new HTTP handler
func NewHandler(aggregator ProductAggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricescout-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles product search requests
func (h *Handler) SearchProducts(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "productNumber is required",
		})
		return
	}

	result, err := h.aggregator.Aggregate(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentifier) {
			// The result carries the validation message so clients can
			// render it directly.
			c.JSON(http.StatusBadRequest, result)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
