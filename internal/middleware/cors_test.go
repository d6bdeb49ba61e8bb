package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		origin     string
		expectCors bool
	}{
		{
			name:       "NoOrigin",
			origin:     "",
			expectCors: false,
		},
		{
			name:       "AllowedOrigin",
			origin:     "http://localhost:8080",
			expectCors: true,
		},
		{
			name:       "AnyLocalhostPort",
			origin:     "http://localhost:3000",
			expectCors: true,
		},
		{
			name:       "NotAllowedOrigin",
			origin:     "https://www.notallowed.com",
			expectCors: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("GET", "/dashboard", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			Cors()(nextHandler).ServeHTTP(rr, req)

			// next always runs, the headers make the difference
			assert.True(t, nextCalled)
			if tc.expectCors {
				assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "X-GYMTRACKER-TOKEN")
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
