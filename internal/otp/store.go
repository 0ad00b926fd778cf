// Package otp implements the in-memory one-time-password store used for
// phone verification. Records live for five minutes and die on success,
// expiry, or too many wrong attempts. Nothing is ever persisted.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	// CodeTTL is how long a sent code stays valid.
	CodeTTL = 5 * time.Minute
	// MaxAttempts is the number of wrong guesses before lockout.
	MaxAttempts = 3
)

// Record is one pending verification, keyed by full international phone.
type Record struct {
	Code        string
	ExpiresAt   time.Time
	CountryCode string
	Attempts    int
}

// Check outcomes. Handlers map these onto user-facing messages.
var (
	ErrNotFound     = errors.New("otp expired or not found")
	ErrExpired      = errors.New("otp has expired")
	ErrTooManyTries = errors.New("too many attempts")
)

// MismatchError reports a wrong code and how many tries are left.
// The record stays in place until attempts run out.
type MismatchError struct {
	AttemptsRemaining int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("invalid otp, %d attempts remaining", e.AttemptsRemaining)
}

// Store holds pending verifications. Constructed once and injected into
// the verify handlers; tests build their own isolated instances.
type Store struct {
	mu      sync.Mutex
	pending map[string]*Record
	now     func() time.Time // overridable in tests
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		pending: make(map[string]*Record),
		now:     time.Now,
	}
}

// GenerateCode draws a uniform 6-digit numeric code.
func GenerateCode() (string, error) {
	// [100000, 999999]
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Put registers a fresh code for phone, replacing any previous record.
func (s *Store) Put(phone, code, countryCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[phone] = &Record{
		Code:        code,
		ExpiresAt:   s.now().Add(CodeTTL),
		CountryCode: countryCode,
		Attempts:    0,
	}
}

// Check validates a submitted code. On success the record is consumed and
// its country code returned. Expired and locked-out records are deleted at
// check time; a mismatch increments the attempt counter and keeps the
// record.
func (s *Store) Check(phone, code string) (countryCode string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.pending[phone]
	if !ok {
		return "", ErrNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.pending, phone)
		return "", ErrExpired
	}
	if rec.Attempts >= MaxAttempts {
		delete(s.pending, phone)
		return "", ErrTooManyTries
	}
	if rec.Code != code {
		rec.Attempts++
		return "", &MismatchError{AttemptsRemaining: MaxAttempts - rec.Attempts}
	}

	delete(s.pending, phone)
	return rec.CountryCode, nil
}
