package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	WriteError(rec, req, HandlerError{Status: http.StatusNotFound, Message: "Theme not found"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Theme not found", body.Error)

	rec = httptest.NewRecorder()
	WriteError(rec, req, errors.New("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")
}

func TestQueryValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?s=.dark,%20.night&s=&s=[data-theme=dark]", nil)
	assert.Equal(t, []string{".dark", ".night", "[data-theme=dark]"}, QueryValues(req, "s"))
	assert.Nil(t, QueryValues(req, "missing"))
}

func TestParseBool(t *testing.T) {
	for raw, want := range map[string]bool{"": false, "on": true, "true": true, "0": false, " TRUE ": true} {
		got, err := ParseBool(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}
