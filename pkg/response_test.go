package pkg

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()

	testJson := `{"key":"val"}`
	WriteResponse(w, ContentType.JSON, testJson, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, ContentType.JSON, w.Header().Get("Content-Type"))
	assert.Equal(t, testJson, w.Body.String())
}

func TestWriteJSONResponseOK(t *testing.T) {
	w := httptest.NewRecorder()

	testJson := `{"key":"val"}`
	WriteJSONResponseOK(w, testJson)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentType.JSON, w.Header().Get("Content-Type"))
	assert.Equal(t, testJson, w.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSONError(w, "No autenticado", http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, ContentType.JSON, w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "No autenticado"}`, w.Body.String())
}

func TestRedirectWithStatus(t *testing.T) {
	w := httptest.NewRecorder()
	r, err := http.NewRequest("POST", "/login", nil)
	require.NoError(t, err)

	RedirectWithStatus(w, r, "/dashboard", "Bienvenido!")

	require.Equal(t, http.StatusFound, w.Code)
	location, err := w.Result().Location()
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", location.Path)
	assert.Equal(t, "Bienvenido!", location.Query().Get("status"))
	// the status message must survive the query string encoding round trip
	assert.Contains(t, location.RawQuery, "status="+url.QueryEscape("Bienvenido!"))
}
