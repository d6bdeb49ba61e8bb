package pkg

import (
	"net/http"
	"net/url"
)

// RedirectWithStatus redirects the browser form flows back to a page,
// carrying a human-readable status message as a query parameter.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, path, message string) {
	target := path
	if message != "" {
		target += "?status=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusFound)
}
