package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellabath/storefront-api/internal/middleware"
	"github.com/bellabath/storefront-api/internal/siteconfig"
)

func adminRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	admin := r.Group("/api/admin")
	admin.GET("/config", h.GetSiteConfig)
	admin.POST("/login", h.AdminLogin)
	admin.GET("/hero-images", h.GetHeroImages)
	admin.GET("/hidden-categories", h.GetHiddenCategories)

	authed := admin.Group("")
	authed.Use(middleware.AdminAuth(h.Cfg.AdminPassword))
	authed.PUT("/config", h.PutSiteConfig)
	authed.PATCH("/config/:section", h.PatchSiteConfigSection)
	authed.PUT("/category-images/:categoryId", h.PutCategoryImage)
	authed.DELETE("/category-images/:categoryId", h.DeleteCategoryImage)
	authed.POST("/categories/:categoryId/toggle-visibility", h.ToggleCategoryVisibility)
	return r
}

func adminReq(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPost, "/api/admin/login", `{"password": "secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"secret"`)

	w = adminReq(r, http.MethodPost, "/api/admin/login", `{"password": "wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMutationRequiresBearer(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPut, "/api/admin/config", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = adminReq(r, http.MethodPut, "/api/admin/config", `{}`, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = adminReq(r, http.MethodPut, "/api/admin/config", `{"categoryGridCount": 6}`, "secret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPutConfigStampsLastUpdated(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPut, "/api/admin/config", `{"categoryGridCount": 6}`, "secret")
	require.Equal(t, http.StatusOK, w.Code)

	w = adminReq(r, http.MethodGet, "/api/admin/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg siteconfig.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, 6, cfg.CategoryGridCount)
	assert.NotEmpty(t, cfg.LastUpdated)
}

func TestPatchConfigSection(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPut, "/api/admin/config",
		`{"categoryImages": {"5": "/images/categories/a.jpg"}}`, "secret")
	require.Equal(t, http.StatusOK, w.Code)

	w = adminReq(r, http.MethodPatch, "/api/admin/config/categoryImages",
		`{"6": "/images/categories/b.jpg"}`, "secret")
	require.Equal(t, http.StatusOK, w.Code)

	cfg, err := h.SiteConfig.Read()
	require.NoError(t, err)
	assert.Equal(t, "/images/categories/a.jpg", cfg.CategoryImages["5"])
	assert.Equal(t, "/images/categories/b.jpg", cfg.CategoryImages["6"])
}

func TestPatchConfigUnknownSection(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPatch, "/api/admin/config/nonsense", `{"a": 1}`, "secret")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryImageLifecycle(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPut, "/api/admin/category-images/5",
		`{"imageUrl": "/images/categories/tub.jpg"}`, "secret")
	require.Equal(t, http.StatusOK, w.Code)

	cfg, err := h.SiteConfig.Read()
	require.NoError(t, err)
	assert.Equal(t, "/images/categories/tub.jpg", cfg.CategoryImages["5"])

	w = adminReq(r, http.MethodDelete, "/api/admin/category-images/5", "", "secret")
	require.Equal(t, http.StatusOK, w.Code)

	cfg, err = h.SiteConfig.Read()
	require.NoError(t, err)
	assert.NotContains(t, cfg.CategoryImages, "5")
}

func TestHeroImagesDefaultWhenUnconfigured(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodGet, "/api/admin/hero-images", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var heroes []siteconfig.HeroImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &heroes))
	assert.Len(t, heroes, len(siteconfig.DefaultHeroImages))
}

func TestToggleCategoryVisibility(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := adminRouter(h)

	w := adminReq(r, http.MethodPost, "/api/admin/categories/7/toggle-visibility", "", "secret")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isHidden":true`)

	w = adminReq(r, http.MethodGet, "/api/admin/hidden-categories", "", "")
	assert.JSONEq(t, `["7"]`, w.Body.String())

	w = adminReq(r, http.MethodPost, "/api/admin/categories/7/toggle-visibility", "", "secret")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isHidden":false`)

	w = adminReq(r, http.MethodGet, "/api/admin/hidden-categories", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}
