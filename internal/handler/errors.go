package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

// respondAnalysisError maps analysis errors to a status code. Validation
// problems are the caller's fault; everything else is a 500 with the message.
func respondAnalysisError(c *gin.Context, op string, err error) {
	var validationErr *analysis.ValidationError
	if errors.As(err, &validationErr) {
		respondError(c, http.StatusBadRequest, validationErr.Message)
		return
	}

	slog.Error("error "+op, "error", err, "request_id", RequestIDFrom(c))
	respondError(c, http.StatusInternalServerError, err.Error())
}
