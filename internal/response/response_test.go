package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "uploaded", map[string]string{"id": "k"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "uploaded", body["message"])
	assert.Equal(t, map[string]any{"id": "k"}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestList_EmptyStillReportsCount(t *testing.T) {
	rec := httptest.NewRecorder()
	List[string](rec, nil)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, CodeNoFileProvided, "no file provided")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no file provided", body["error"])
	assert.Equal(t, CodeNoFileProvided, body["code"])
	assert.NotContains(t, body, "details")
}

func TestInternalError_CarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, CodeStorageWriteFailed, "upload failed", errors.New("access denied"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "access denied", body["details"])
	assert.Equal(t, CodeStorageWriteFailed, body["code"])
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decode(t, rec)["error"])
}
