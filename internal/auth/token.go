package auth

import "net/http"

const (
	SessionCookieName = "gymtracker_session"
	SessionHeaderName = "X-GYMTRACKER-TOKEN"
)

// TokenFromRequest extracts the session token from the request: API clients
// send it in a header, browsers carry it in the session cookie.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(SessionHeaderName); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
