package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-mineral-analyzer/internal/config"
	apperrors "go-mineral-analyzer/internal/errors"
	"go-mineral-analyzer/internal/logger"
	"go-mineral-analyzer/internal/service"
)

// AnalysisRequest is the JSON body of POST /analyze.
type AnalysisRequest struct {
	ImageURL       string `json:"image_url" binding:"required,url"`
	MaskURL        string `json:"mask_url" binding:"required,url"`
	Verify         bool   `json:"verify,omitempty"`
	TargetMaterial string `json:"target_material,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler configures the gin router.
func NewHandler(svc service.SampleAnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/catalog", listCatalog(svc))
	r.POST("/analyze", analyzeSample(svc, cfg))

	return r
}

func analyzeSample(svc service.SampleAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing sample analysis request")

		var req AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		// Query parameter takes precedence over the JSON body.
		if verifyQuery := c.Query("verify"); verifyQuery != "" {
			req.Verify = verifyQuery == "true"
		}

		result, err := svc.Analyze(ctx, service.AnalysisRequest{
			ImageURL:       req.ImageURL,
			MaskURL:        req.MaskURL,
			Verify:         req.Verify,
			TargetMaterial: req.TargetMaterial,
		})
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"image_url": req.ImageURL,
				"ip":        c.ClientIP(),
			}).Error("Sample analysis failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"image_url":          req.ImageURL,
			"analysis_id":        result.ID,
			"status":             result.Status,
			"quality_index":      result.QualityIndex,
			"particles":          len(result.Particles),
			"verified":           req.Verify,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Sample analysis completed successfully")

		c.JSON(http.StatusOK, result)
	}
}

func listCatalog(svc service.SampleAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"materials": svc.Catalog()})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
