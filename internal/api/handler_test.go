package api_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh/seo_engine/internal/api"
	"github.com/nitesh/seo_engine/internal/metrics"
	"github.com/nitesh/seo_engine/internal/service"
	"github.com/nitesh/seo_engine/internal/sitemap"
	"github.com/nitesh/seo_engine/internal/store"
	"github.com/nitesh/seo_engine/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func rating(v float64) *float64 { return &v }

func newRouter(t *testing.T) (*gin.Engine, *store.MemStore) {
	t.Helper()
	mem := store.NewMemStore()
	mem.SeedProviders(
		&models.Provider{ID: "a1", City: "Lyon", PostalCode: "69002", Rating: rating(4.8), Specialties: []string{"Apple", "iPhone 13"}, Services: []string{"Écran"}},
		&models.Provider{ID: "a2", City: "Lyon", PostalCode: "69003", Rating: rating(4.2), Specialties: []string{"Samsung"}, Services: []string{"Batterie"}},
	)
	m := metrics.New()
	svc := service.NewService(mem, mem, nil, nil, m)
	h := api.NewHandler(svc, sitemap.New(mem, "https://www.example.fr"), m, 2)

	r := gin.New()
	api.RegisterRoutes(r, h)
	return r, mem
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGenerateCity(t *testing.T) {
	r, mem := newRouter(t)

	w := do(r, http.MethodPost, "/v1/admin/generate/city", `{"city":"Lyon"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data models.GenerationSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lyon", resp.Data.City)
	assert.Equal(t, 16, resp.Data.Total)
	assert.Equal(t, 16, resp.Data.Success)
	assert.Contains(t, mem.Slugs(), "reparateurs-lyon")
	assert.Contains(t, mem.Slugs(), "reparation-iphone-13-lyon")
}

func TestGenerateCity_BadRequest(t *testing.T) {
	r, _ := newRouter(t)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/admin/generate/city", `{"city":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/admin/generate/city", `{nope`).Code)
}

func TestGenerateCities(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/v1/admin/generate/cities", `{"cities":["Lyon","Brest"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Meta struct {
			Cities int `json:"cities"`
		} `json:"meta"`
		Data []models.GenerationSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Meta.Cities)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Lyon", resp.Data[0].City)
	assert.Equal(t, "Brest", resp.Data[1].City)
	assert.Zero(t, resp.Data[1].Total)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/admin/generate/cities", `{"cities":[]}`).Code)
}

func TestGenerateSymptoms(t *testing.T) {
	r, mem := newRouter(t)
	w := do(r, http.MethodPost, "/v1/admin/generate/symptoms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mem.Slugs(), 8)
}

func TestPublishAndGetPage(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/city", `{"city":"Lyon"}`).Code)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/v1/pages/reparateurs-lyon", "").Code)

	w := do(r, http.MethodPut, "/v1/admin/pages/reparateurs-lyon/publish", `{"published":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"slug":"reparateurs-lyon","published":true,"indexed":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/pages/reparateurs-lyon", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.Page `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.PageTypeHubCity, resp.Data.PageType)
	assert.Equal(t, 2, resp.Data.RepairersCount)
}

func TestPublish_Errors(t *testing.T) {
	r, _ := newRouter(t)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/v1/admin/pages/x/publish", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/v1/admin/pages/unknown/publish", `{"published":true}`).Code)
}

func TestDeletePage(t *testing.T) {
	r, mem := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/symptoms", "").Code)

	w := do(r, http.MethodPost, "/v1/admin/generate/symptoms", "")
	var resp struct {
		Data models.GenerationSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	id := resp.Data.Results[0].ID
	require.NotEmpty(t, id)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/v1/admin/pages/"+id, "").Code)
	assert.Len(t, mem.Slugs(), 7)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/v1/admin/pages/"+id, "").Code)
}

func TestStats(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/symptoms", "").Code)

	w := do(r, http.MethodGet, "/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"meta":{"total":8},"data":{"symptom":8}}`, w.Body.String())
}

func TestSitemaps(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/city", `{"city":"Lyon"}`).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/v1/admin/pages/reparateurs-lyon/publish", `{"published":true}`).Code)

	w := do(r, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))
	assert.Contains(t, w.Body.String(), "<loc>https://www.example.fr/sitemaps/sitemap-cities.xml</loc>")

	w = do(r, http.MethodGet, "/sitemaps/sitemap-cities.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>https://www.example.fr/reparateurs-lyon</loc>")
	assert.NotContains(t, w.Body.String(), "reparation-apple-lyon")

	w = do(r, http.MethodGet, "/sitemaps/sitemap-repairers.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/reparateur/a1")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/sitemaps/sitemap-news.xml", "").Code)
}

func TestSitemapIndex_EveryLocIsServed(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	var idx struct {
		Sitemaps []struct {
			Loc string `xml:"loc"`
		} `xml:"sitemap"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &idx))
	require.Len(t, idx.Sitemaps, len(sitemap.Categories))

	for _, s := range idx.Sitemaps {
		u, err := url.Parse(s.Loc)
		require.NoError(t, err)
		assert.Equal(t, "www.example.fr", u.Host)
		res := do(r, http.MethodGet, u.Path, "")
		assert.Equal(t, http.StatusOK, res.Code, "GET %s", u.Path)
		assert.Contains(t, res.Body.String(), "<urlset")
	}
}

func TestSitemaps_PublishedButNotIndexedIsHidden(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/city", `{"city":"Lyon"}`).Code)

	w := do(r, http.MethodPut, "/v1/admin/pages/reparateurs-lyon/publish", `{"published":true,"indexed":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/sitemaps/sitemap-cities.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "reparateurs-lyon")

	// still served to the presentation layer
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/pages/reparateurs-lyon", "").Code)

	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/v1/admin/pages/reparateurs-lyon/publish", `{"published":true,"indexed":true}`).Code)
	w = do(r, http.MethodGet, "/sitemaps/sitemap-cities.xml", "")
	assert.Contains(t, w.Body.String(), "<loc>https://www.example.fr/reparateurs-lyon</loc>")
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/admin/generate/symptoms", "").Code)

	w := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `seo_engine_pages_generated_total{page_type="symptom",status="success"} 8`)
}
