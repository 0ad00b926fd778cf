package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/bellabath/storefront-api/internal/auth"
	"github.com/bellabath/storefront-api/internal/cache"
	"github.com/bellabath/storefront-api/internal/catalog"
	"github.com/bellabath/storefront-api/internal/config"
	"github.com/bellabath/storefront-api/internal/odoo"
	"github.com/bellabath/storefront-api/internal/otp"
	"github.com/bellabath/storefront-api/internal/siteconfig"
)

// Handlers holds every dependency the route handlers need. Everything is
// constructed in main and injected here, with no package-level state, so
// tests can wire up isolated instances with fakes.
type Handlers struct {
	Cfg        *config.Config
	Odoo       odoo.Caller
	Cache      *cache.Store
	OTP        *otp.Store
	SiteConfig *siteconfig.Store
	Tokens     *auth.TokenIssuer
	Transform  catalog.Transformer
	Aggregator *catalog.Aggregator
	Log        *logrus.Logger
}
