// Package gin exposes citycopy services over HTTP using the Gin framework.
package gin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/citycopy"
	"github.com/gin-gonic/gin"
)

// Handler holds HTTP request handlers.
type Handler struct {
	Contents citycopy.ContentService
	Store    citycopy.ContentStore
	Logger   *slog.Logger

	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// contentResponse is the success payload for content requests.
type contentResponse struct {
	Success     bool                    `json:"success"`
	Cached      bool                    `json:"cached"`
	Content     *citycopy.ContentBundle `json:"content"`
	GeneratedAt *time.Time              `json:"generatedAt,omitempty"`
}

// errorResponse is the failure payload for every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetOrGenerate handles POST requests for locality content.
func (h *Handler) GetOrGenerate(c *gin.Context) {
	var req citycopy.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.Contents.GetOrGenerate(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "slug", req.LocalitySlug)
		return
	}

	resp := contentResponse{
		Success: true,
		Cached:  result.Cached,
		Content: result.Content,
	}
	if !result.Content.GeneratedAt.IsZero() {
		generatedAt := result.Content.GeneratedAt
		resp.GeneratedAt = &generatedAt
	}
	c.JSON(http.StatusOK, resp)
}

// GetContent handles cached reads of a locality's content. It never
// generates. Responses carry an ETag and honour If-None-Match.
func (h *Handler) GetContent(c *gin.Context) {
	slug := c.Param("slug")

	bundle, err := h.Store.FindContentBySlug(c.Request.Context(), slug)
	if err != nil {
		h.writeError(c, err, "slug", slug)
		return
	}

	body, err := json.Marshal(bundle)
	if err != nil {
		h.writeError(c, err, "slug", slug)
		return
	}

	etag := ETag(body)
	c.Header("ETag", etag)
	if etagMatch(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ListContents handles listing of cached localities.
func (h *Handler) ListContents(c *gin.Context) {
	var filter citycopy.ContentFilter
	if province := c.Query("province"); province != "" {
		filter.Province = &province
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	bundles, err := h.Store.FindContents(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contents": bundles, "count": len(bundles)})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) writeError(c *gin.Context, err error, attrs ...any) {
	code := citycopy.ErrorCode(err)
	status := StatusCode(code)

	attrs = append(attrs, "code", code, "status", status, "err", err)
	if status >= http.StatusInternalServerError {
		h.logger().Error("request failed", attrs...)
	} else {
		h.logger().Warn("request rejected", attrs...)
	}

	c.JSON(status, errorResponse{
		Error:   errorTitle(code),
		Details: citycopy.ErrorMessage(err),
	})
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}

// StatusCode maps an application error code to an HTTP status code.
func StatusCode(code string) int {
	switch code {
	case citycopy.EINVALID:
		return http.StatusBadRequest
	case citycopy.ENOTFOUND:
		return http.StatusNotFound
	case citycopy.ERATELIMIT:
		return http.StatusTooManyRequests
	case citycopy.ECONFIG:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorTitle(code string) string {
	switch code {
	case citycopy.EINVALID:
		return "Invalid request"
	case citycopy.ENOTFOUND:
		return "Not found"
	case citycopy.ERATELIMIT:
		return "Too many requests"
	case citycopy.ECONFIG:
		return "Service not configured"
	case citycopy.EGENERATE:
		return "Content generation failed"
	case citycopy.EPARSE:
		return "Generated content could not be parsed"
	default:
		return "Internal error"
	}
}

// etagMatch reports whether an If-None-Match header matches etag using
// weak comparison.
func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// ETag returns a strong entity tag for a response body.
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
