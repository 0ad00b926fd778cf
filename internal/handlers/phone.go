package handlers

import (
	"regexp"
	"strings"
)

// Customers type their phone numbers every which way, and Odoo stores them
// every which way too. We derive a few variants from whatever was typed
// and match any of them against both phone fields.

// localCountryPrefix is the home-market dial code stripped to produce the
// national-format variant.
const localCountryPrefix = "968"

var (
	phonePattern    = regexp.MustCompile(`^\+?\d{6,}$`)
	nonDigitPattern = regexp.MustCompile(`[\s\-\(\)]`)
	digitPattern    = regexp.MustCompile(`\D`)
)

// digitsOnly strips everything that isn't a digit, including any leading +.
func digitsOnly(phone string) string {
	return digitPattern.ReplaceAllString(phone, "")
}

// looksLikePhone reports whether the query should be treated as a phone
// search: optional leading +, then at least six digits.
func looksLikePhone(query string) bool {
	return phonePattern.MatchString(strings.ReplaceAll(query, " ", ""))
}

type phoneVariants struct {
	Clean          string // stripped of spaces/dashes/parens
	LastDigits     string // last 8 digits
	WithoutPlus    string
	WithoutCountry string // without the local dial prefix
}

func makePhoneVariants(phone string) phoneVariants {
	clean := nonDigitPattern.ReplaceAllString(phone, "")
	withoutPlus := strings.TrimPrefix(clean, "+")

	lastDigits := withoutPlus
	if len(lastDigits) > 8 {
		lastDigits = lastDigits[len(lastDigits)-8:]
	}

	withoutCountry := clean
	withoutCountry = strings.TrimPrefix(withoutCountry, "+")
	withoutCountry = strings.TrimPrefix(withoutCountry, localCountryPrefix)

	return phoneVariants{
		Clean:          clean,
		LastDigits:     lastDigits,
		WithoutPlus:    withoutPlus,
		WithoutCountry: withoutCountry,
	}
}

// orDomain combines conditions with Odoo's prefix-notation OR operator.
func orDomain(conditions ...[]any) []any {
	domain := make([]any, 0, len(conditions)*2)
	for i := 0; i < len(conditions)-1; i++ {
		domain = append(domain, "|")
	}
	for _, cond := range conditions {
		domain = append(domain, cond)
	}
	return domain
}

// partnerPhoneDomain builds the OR-across-fields-and-variants domain used
// to find a customer by any spelling of their number. includeName also
// matches partners whose display name embeds the number.
func partnerPhoneDomain(v phoneVariants, includeName bool) []any {
	conditions := [][]any{
		{"phone", "ilike", v.Clean},
		{"mobile", "ilike", v.Clean},
		{"phone", "ilike", v.WithoutPlus},
		{"mobile", "ilike", v.WithoutPlus},
		{"phone", "ilike", v.LastDigits},
		{"mobile", "ilike", v.LastDigits},
		{"phone", "ilike", v.WithoutCountry},
		{"mobile", "ilike", v.WithoutCountry},
	}
	if includeName {
		conditions = append(conditions,
			[]any{"name", "ilike", v.LastDigits},
			[]any{"name", "ilike", v.WithoutCountry},
		)
	}
	return orDomain(conditions...)
}
