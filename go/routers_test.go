package cafeserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthzIsPublic(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMenuIsPublic(t *testing.T) {
	srv := newTestServer(t)

	menu := srv.do(t, http.MethodGet, "/api/menu", "", nil)
	description := srv.do(t, http.MethodGet, "/api/menu/description/1", "", nil)
	missing := srv.do(t, http.MethodGet, "/api/menu/description/99", "", nil)

	require.Equal(t, http.StatusOK, menu.Code)
	var products []MenuProduct
	decode(t, menu, &products)
	assert.Len(t, products, 2)
	require.Equal(t, http.StatusOK, description.Code)
	var body MenuDescription
	decode(t, description, &body)
	assert.Equal(t, "Espresso description", body.Description)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCORSPreflightBypassesGate(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodOptions, "/api/cart/member/submit", "", nil,
		"Origin", testOrigin, "Access-Control-Request-Method", http.MethodPost)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSRejectsOtherOrigins(t *testing.T) {
	srv := newTestServer(t)

	simple := srv.do(t, http.MethodGet, "/api/menu", "", nil, "Origin", "https://evil.example")
	preflight := srv.do(t, http.MethodOptions, "/api/menu", "", nil, "Origin", "https://evil.example")
	noOrigin := srv.do(t, http.MethodGet, "/api/menu", "", nil)

	assert.Equal(t, http.StatusForbidden, simple.Code)
	assert.Empty(t, simple.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusForbidden, preflight.Code)
	assert.Equal(t, http.StatusOK, noOrigin.Code)
}

func TestCORSSimpleRequestFromAllowedOrigin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/menu", "", nil, "Origin", testOrigin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), ReplayedHeader)
}
