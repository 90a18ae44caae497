package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitesh/seo_engine/internal/metrics"
	"github.com/nitesh/seo_engine/internal/service"
	"github.com/nitesh/seo_engine/internal/sitemap"
	"github.com/nitesh/seo_engine/internal/store"
)

const (
	xmlContentType = "application/xml; charset=utf-8"
	maxCities      = 200
)

type Handler struct {
	svc      *service.Service
	sitemaps *sitemap.Assembler
	metrics  *metrics.Metrics
	workers  int
}

func NewHandler(svc *service.Service, sitemaps *sitemap.Assembler, m *metrics.Metrics, workers int) *Handler {
	if workers <= 0 {
		workers = 1
	}
	return &Handler{svc: svc, sitemaps: sitemaps, metrics: m, workers: workers}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Health)
	r.GET("/sitemap.xml", h.SitemapIndex)
	r.GET(sitemap.CategoryDir+":file", h.SitemapFile)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/pages/:slug", h.GetPage)

		admin := v1.Group("/admin")
		admin.POST("/generate/city", h.GenerateCity)
		admin.POST("/generate/cities", h.GenerateCities)
		admin.POST("/generate/symptoms", h.GenerateSymptoms)
		admin.PUT("/pages/:slug/publish", h.Publish)
		admin.DELETE("/pages/:id", h.DeletePage)
		admin.GET("/stats", h.Stats)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPage: GET /v1/pages/:slug
// Only published pages are served.
func (h *Handler) GetPage(c *gin.Context) {
	slug := c.Param("slug")
	page, err := h.svc.GetPageBySlug(c.Request.Context(), slug)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

type generateCityRequest struct {
	City string `json:"city"`
}

// GenerateCity: POST /v1/admin/generate/city
// Body: {"city": "Lyon"}
func (h *Handler) GenerateCity(c *gin.Context) {
	var req generateCityRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing city"})
		return
	}
	summary, err := h.svc.GenerateAllPagesForCity(c.Request.Context(), req.City)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed: " + err.Error(), "data": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type generateCitiesRequest struct {
	Cities []string `json:"cities"`
}

// GenerateCities: POST /v1/admin/generate/cities
// Body: {"cities": ["Lyon", "Paris"]}
func (h *Handler) GenerateCities(c *gin.Context) {
	var req generateCitiesRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if len(req.Cities) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing cities"})
		return
	}
	if len(req.Cities) > maxCities {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many cities"})
		return
	}
	summaries, err := h.svc.GenerateCities(c.Request.Context(), req.Cities, h.workers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation interrupted: " + err.Error(), "data": summaries})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"cities": len(summaries)},
		"data": summaries,
	})
}

// GenerateSymptoms: POST /v1/admin/generate/symptoms
func (h *Handler) GenerateSymptoms(c *gin.Context) {
	summary, err := h.svc.GenerateStandardSymptomPages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation interrupted: " + err.Error(), "data": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type publishRequest struct {
	Published *bool `json:"published"`
	Indexed   *bool `json:"indexed"`
}

// Publish: PUT /v1/admin/pages/:slug/publish
// Body: {"published": true, "indexed": true}; indexed defaults to published.
func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.Published == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing published flag"})
		return
	}
	indexed := *req.Published
	if req.Indexed != nil {
		indexed = *req.Indexed
	}
	slug := c.Param("slug")
	if err := h.svc.SetPublished(c.Request.Context(), slug, *req.Published, indexed); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"slug":      slug,
		"published": *req.Published,
		"indexed":   indexed,
	})
}

// DeletePage: DELETE /v1/admin/pages/:id
func (h *Handler) DeletePage(c *gin.Context) {
	if err := h.svc.DeletePage(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats: GET /v1/admin/stats
func (h *Handler) Stats(c *gin.Context) {
	counts, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"total": total},
		"data": counts,
	})
}

// SitemapIndex: GET /sitemap.xml
func (h *Handler) SitemapIndex(c *gin.Context) {
	doc, err := h.sitemaps.Index()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, xmlContentType, doc)
}

// SitemapFile: GET /sitemaps/:file, e.g. /sitemaps/sitemap-cities.xml
func (h *Handler) SitemapFile(c *gin.Context) {
	category, ok := sitemap.CategoryFromFile(c.Param("file"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sitemap"})
		return
	}
	doc, err := h.sitemaps.Category(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, xmlContentType, doc)
}

func writeError(c *gin.Context, err error) {
	switch {
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrPageTypeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
