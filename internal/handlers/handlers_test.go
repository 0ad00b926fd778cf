package handlers

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bellabath/storefront-api/internal/auth"
	"github.com/bellabath/storefront-api/internal/cache"
	"github.com/bellabath/storefront-api/internal/catalog"
	"github.com/bellabath/storefront-api/internal/config"
	"github.com/bellabath/storefront-api/internal/otp"
	"github.com/bellabath/storefront-api/internal/siteconfig"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCaller routes every Odoo call to a single function and marshals the
// result the way the real client would hand it back.
type fakeCaller struct {
	handle func(model, method string, args []any, kwargs map[string]any) (any, error)
}

func (f *fakeCaller) Call(_ context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	result, err := f.handle(model, method, args, kwargs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func newTestHandlers(t *testing.T, rpc *fakeCaller) *Handlers {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Env:            "development",
		Port:           "0",
		AdminPassword:  "secret",
		ImagesDir:      t.TempDir(),
		SiteConfigPath: filepath.Join(t.TempDir(), "site-config.json"),
		VerifySecret:   "test-secret",
	}

	return &Handlers{
		Cfg:        cfg,
		Odoo:       rpc,
		Cache:      cache.NewStore(),
		OTP:        otp.NewStore(),
		SiteConfig: siteconfig.NewStore(cfg.SiteConfigPath),
		Tokens:     auth.NewTokenIssuer(cfg.VerifySecret),
		Transform:  catalog.Transformer{BaseURL: "https://erp.example.com"},
		Aggregator: &catalog.Aggregator{RPC: rpc},
		Log:        log,
	}
}
