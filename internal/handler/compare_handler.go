package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

type SourceComparer interface {
	CompareSources(ctx context.Context, topic string, sources []string) ([]model.ComparisonResult, error)
}

type CompareHandler struct {
	comparer SourceComparer
}

func NewCompareHandler(comparer SourceComparer) *CompareHandler {
	return &CompareHandler{comparer: comparer}
}

func (h *CompareHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid compare request body", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Topic) == "" {
		respondError(c, http.StatusBadRequest, "Topic must be provided")
		return
	}

	results, err := h.comparer.CompareSources(c.Request.Context(), req.Topic, req.Sources)
	if err != nil {
		respondAnalysisError(c, "comparing sources", err)
		return
	}

	if results == nil {
		results = []model.ComparisonResult{}
	}
	c.JSON(http.StatusOK, results)
}
