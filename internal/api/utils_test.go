package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"Valid", `{"name":"ana","age":3}`, ""},
		{"Empty", ``, "body must not be empty"},
		{"Syntax", `{"name":}`, "badly-formed JSON"},
		{"Truncated", `{"name":"ana"`, "badly-formed JSON"},
		{"WrongType", `{"age":"three"}`, `incorrect JSON type for field "age"`},
		{"UnknownField", `{"nickname":"a"}`, `unknown key "nickname"`},
		{"TwoValues", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"TooLarge", `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "must not be larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			var dst payload
			err := DecodeJSONBody(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "ana", Age: 3}, dst)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorResponse_CarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-42"))
	w := httptest.NewRecorder()

	ErrorResponse(w, req, http.StatusNotFound, "No schedule found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Response{Success: false, Error: "No schedule found", RequestID: "req-42"}, body)
}

func TestWriteJSONResponse(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSONResponse(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNoContent, MessageResponse{Message: "ignored"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("Unmarshalable", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSONResponse(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]any{"f": func() {}})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(nil, ""))
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"a", "b"}, "b"))
	assert.False(t, VerifyAudience(jwt.ClaimStrings{"a"}, "b"))
	assert.False(t, VerifyAudience(nil, "b"))
}
