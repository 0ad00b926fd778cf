package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/config"
	"github.com/bellabath/storefront-api/internal/odoo"
	"github.com/bellabath/storefront-api/internal/otp"
)

const verifiedMarker = "[VERIFIED]"

// GetCountries handles GET /api/verify/countries. Verification is offered
// to GCC customers only; the frontend renders this allow-list as the
// country picker.
func (h *Handlers) GetCountries(c *gin.Context) {
	countries := make([]config.Country, 0, len(config.GCCCountries))
	for _, code := range []string{"OM", "AE", "SA", "QA", "KW", "BH"} {
		countries = append(countries, config.GCCCountries[code])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "countries": countries})
}

// SendOTP handles POST /api/verify/send-otp.
type sendOTPInput struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

func (h *Handlers) SendOTP(c *gin.Context) {
	var input sendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	country, ok := config.GCCCountries[input.CountryCode]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification is only available for GCC countries"})
		return
	}
	if len(input.Phone) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid phone number"})
		return
	}

	fullPhone := country.DialCode + digitsOnly(input.Phone)

	code, err := otp.GenerateCode()
	if err != nil {
		h.Log.WithError(err).Error("otp generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	h.OTP.Put(fullPhone, code, input.CountryCode)

	// TODO: deliver via the WhatsApp Business API once the account is approved
	h.Log.WithField("phone", fullPhone).Infof("OTP issued: %s", code)

	resp := gin.H{
		"success": true,
		"message": fmt.Sprintf("OTP sent to %s %s", country.DialCode, input.Phone),
		"phone":   fullPhone,
	}
	if !h.Cfg.IsProduction() {
		resp["devOtp"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// CheckOTP handles POST /api/verify/check-otp.
type checkOTPInput struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (h *Handlers) CheckOTP(c *gin.Context) {
	var input checkOTPInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Phone == "" || input.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and OTP are required"})
		return
	}

	countryCode, err := h.OTP.Check(input.Phone, input.OTP)
	if err != nil {
		var mismatch *otp.MismatchError
		switch {
		case errors.As(err, &mismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Invalid OTP. Please try again.",
				"attemptsRemaining": mismatch.AttemptsRemaining,
			})
		case errors.Is(err, otp.ErrExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired. Please request a new one."})
		case errors.Is(err, otp.ErrTooManyTries):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many attempts. Please request a new OTP."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired or not found. Please request a new one."})
		}
		return
	}

	// Marking the ERP customer verified is best effort; a write failure
	// must not undo a successful check.
	if err := h.markPartnerVerified(c.Request.Context(), input.Phone, countryCode); err != nil {
		h.Log.WithError(err).Error("partner verification update failed")
	}

	token, err := h.Tokens.GenerateVerificationToken(input.Phone, countryCode)
	if err != nil {
		h.Log.WithError(err).Error("verification token signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"verified":    true,
		"message":     "Phone number verified successfully!",
		"phone":       input.Phone,
		"countryCode": countryCode,
		"token":       token,
	})
}

func (h *Handlers) markPartnerVerified(ctx context.Context, phone, countryCode string) error {
	partners, err := odoo.SearchRead[odoo.PartnerRecord](ctx, h.Odoo, "res.partner",
		[]any{[]any{"phone", "=", phone}},
		map[string]any{"fields": []string{"id", "name", "comment"}, "limit": 1})
	if err != nil {
		return err
	}

	stamp := fmt.Sprintf("%s Phone verified on %s", verifiedMarker, time.Now().UTC().Format(time.RFC3339))
	if len(partners) > 0 {
		comment := partners[0].Comment.String()
		if strings.Contains(comment, "VERIFIED") {
			return nil
		}
		return odoo.WriteRecord(ctx, h.Odoo, "res.partner", []int64{partners[0].ID}, map[string]any{
			"comment": strings.TrimSpace(comment + "\n" + stamp),
		})
	}

	_, err = odoo.CreateRecord(ctx, h.Odoo, "res.partner", map[string]any{
		"name":          fmt.Sprintf("Verified User (%s)", phone),
		"phone":         phone,
		"comment":       fmt.Sprintf("Country: %s\n%s", config.GCCCountries[countryCode].Name, stamp),
		"customer_rank": 1,
	})
	return err
}

// GetVerifyStatus handles GET /api/verify/status.
func (h *Handlers) GetVerifyStatus(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	partners, err := odoo.SearchRead[odoo.PartnerRecord](c.Request.Context(), h.Odoo, "res.partner",
		[]any{[]any{"phone", "=", phone}},
		map[string]any{"fields": []string{"id", "name", "comment"}, "limit": 1})
	if err != nil {
		h.Log.WithError(err).Error("verification status lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check verification status"})
		return
	}

	verified := len(partners) > 0 && strings.Contains(partners[0].Comment.String(), verifiedMarker)
	c.JSON(http.StatusOK, gin.H{"success": true, "verified": verified, "phone": phone})
}
