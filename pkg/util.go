package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"time"
	"unsafe"
)

// DateLayout is the wire format for all dates submitted by and returned to
// the frontend (workout dates, weight measurement dates).
const DateLayout = "2006-01-02"

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomBytes returns securely generated random bytes.
// It will return an error if the system's secure random
// number generator fails to function correctly, in which
// case the caller should not continue
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateRandomString returns a URL-safe, base64 encoded
// securely generated random string.
func GenerateRandomString(s int) (string, error) {
	b, err := GenerateRandomBytes(s)
	return base64.URLEncoding.EncodeToString(b), err
}

// ParseDateOrToday parses a date in DateLayout. An empty or malformed value
// falls back to today, in the server's local time zone.
func ParseDateOrToday(value string) time.Time {
	if value == "" {
		return DateToday()
	}
	d, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return DateToday()
	}
	return d
}

// DateToday returns the current local date, truncated to midnight.
func DateToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
