package config

import (
	"github.com/caarlos0/env"
)

// Config holds everything the server needs to run.
// Every value can come from the environment (or a .env file loaded in main),
// and every value has a working fallback so a fresh checkout boots against
// the dev Odoo instance without any setup.
type Config struct {
	Env  string `env:"GO_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"3001"`

	// Odoo connection
	OdooURL      string `env:"ODOO_URL" envDefault:"https://bellagcc-production-13616817.dev.odoo.com"`
	OdooDatabase string `env:"ODOO_DATABASE" envDefault:"bellagcc-production-13616817"`
	OdooAPIKey   string `env:"ODOO_API_KEY" envDefault:"de6b7193044f410d428e101981088632cbbfb587"`

	// Admin panel password (doubles as the bearer token)
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"bella2024"`

	// Local file storage
	ImagesDir      string `env:"IMAGES_DIR" envDefault:"./images"`
	SiteConfigPath string `env:"SITE_CONFIG_PATH" envDefault:"./site-config.json"`

	// Secret used to sign phone-verification tokens
	VerifySecret string `env:"VERIFY_TOKEN_SECRET" envDefault:"bella-verify-secret-change-me"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether we are running in production mode.
// The OTP debug echo (devOtp in the send-otp response) is gated on this.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Country is one entry of the GCC verification allow-list.
type Country struct {
	Code     string `json:"code"`     // ISO code, e.g. "OM"
	Name     string `json:"name"`     // Display name
	DialCode string `json:"dialCode"` // International prefix, e.g. "+968"
	Flag     string `json:"flag"`
}

// GCCCountries is the fixed allow-list for phone verification.
// Verification is only offered to GCC customers.
var GCCCountries = map[string]Country{
	"OM": {Code: "OM", Name: "Oman", DialCode: "+968", Flag: "🇴🇲"},
	"AE": {Code: "AE", Name: "UAE", DialCode: "+971", Flag: "🇦🇪"},
	"SA": {Code: "SA", Name: "Saudi Arabia", DialCode: "+966", Flag: "🇸🇦"},
	"QA": {Code: "QA", Name: "Qatar", DialCode: "+974", Flag: "🇶🇦"},
	"KW": {Code: "KW", Name: "Kuwait", DialCode: "+965", Flag: "🇰🇼"},
	"BH": {Code: "BH", Name: "Bahrain", DialCode: "+973", Flag: "🇧🇭"},
}

// CountryNames maps ISO codes to full names for customer records.
var CountryNames = map[string]string{
	"OM": "Oman",
	"AE": "United Arab Emirates",
	"QA": "Qatar",
	"IN": "India",
	"SA": "Saudi Arabia",
	"KW": "Kuwait",
	"BH": "Bahrain",
}

// CountryName returns the display name for an ISO code, falling back to
// the code itself for countries outside the map.
func CountryName(code string) string {
	if name, ok := CountryNames[code]; ok {
		return name
	}
	return code
}
