package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veridict/veridict/internal/article"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/pipeline"
)

// AnalyzeRequest is the analyze endpoint request body
type AnalyzeRequest struct {
	Input string `json:"input"`
}

// ExtractArticleRequest is the extract-article endpoint request body
type ExtractArticleRequest struct {
	URL string `json:"url"`
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleAnalyze runs the full verification pipeline on the posted input
func HandleAnalyze(p *pipeline.Pipeline, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		result, err := p.Analyze(c.Request.Context(), req.Input, clientKey(c))
		if err != nil {
			status, message := analyzeFailure(err, logger)
			c.JSON(status, gin.H{"error": message})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// analyzeFailure maps a pipeline error to the response status and body
func analyzeFailure(err error, logger *slog.Logger) (int, string) {
	var admErr *pipeline.AdmissionRejectedError
	if errors.As(err, &admErr) {
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	}

	var valErr *pipeline.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, valErr.Reason
	}

	var modErr *pipeline.ModerationRejectedError
	if errors.As(err, &modErr) {
		return http.StatusBadRequest, "Content flagged as inappropriate: " + strings.Join(modErr.Categories, ", ")
	}

	var cfgErr *pipeline.ConfigurationError
	if errors.As(err, &cfgErr) {
		logger.Error("analysis unavailable", "error", cfgErr.Reason)
		return http.StatusInternalServerError, "AI analysis service temporarily unavailable"
	}

	var schemaErr *llm.SchemaMismatchError
	if errors.As(err, &schemaErr) {
		logger.Error("model output failed schema validation", "schema", schemaErr.Schema, "error", schemaErr)
		return http.StatusInternalServerError, "AI analysis produced an invalid result"
	}

	var upErr *llm.UpstreamError
	if errors.As(err, &upErr) {
		logger.Error("upstream provider failure", "status", upErr.Status, "timeout", upErr.Timeout, "error", upErr)
		switch {
		case upErr.Timeout:
			return http.StatusRequestTimeout, "Analysis request timed out"
		case upErr.Status >= 500:
			return upErr.Status, "AI analysis service temporarily unavailable" // provider status passed through
		default:
			return http.StatusInternalServerError, "AI analysis failed"
		}
	}

	logger.Error("analysis failed", "error", err)
	return http.StatusInternalServerError, err.Error()
}

// HandleExtractArticle fetches a URL and returns its readable article content
func HandleExtractArticle(extractor *article.Extractor, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExtractArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		data, err := extractor.Extract(c.Request.Context(), req.URL)
		if err != nil {
			var extErr *article.Error
			if errors.As(err, &extErr) {
				c.JSON(extErr.Status, gin.H{"error": extErr.Message})
				return
			}
			logger.Error("article extraction failed", "url", req.URL, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract article"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"data":        data,
			"originalUrl": req.URL,
		})
	}
}

// clientKey identifies the caller for admission accounting. Callers behind
// a proxy are keyed by forwarded address; everything else shares one bucket.
func clientKey(c *gin.Context) string {
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		return v
	}
	if v := c.GetHeader("X-Real-IP"); v != "" {
		return v
	}
	return "unknown"
}
