package identity

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()

	p, err := NewProvider(Config{
		BaseURL:         baseURL,
		SecretServerKey: "server-secret",
		JWTSecret:       "test-secret",
	}, discardLogger())
	require.NoError(t, err)
	return p
}

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	tokenString, err := tokens.Generate("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := tokens.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenValidationRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b")
	require.NoError(t, err)

	tokenString, err := issuer.Generate("user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Validate(tokenString)
	assert.Error(t, err)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.Error(t, err)
}

func TestCurrentCaller(t *testing.T) {
	p := newTestProvider(t, "http://unused")

	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)
	tokenString, err := tokens.Generate("user-1", "user", time.Hour)
	require.NoError(t, err)

	caller, err := p.CurrentCaller(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", caller.ID)
	assert.Equal(t, "user", caller.Role)

	_, err = p.CurrentCaller(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = p.CurrentCaller(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestResolveDisplayParsesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user-1", r.URL.Path)
		assert.Equal(t, "server-secret", r.Header.Get("X-Stack-Secret-Server-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "user-1",
			"display_name": "Display Name",
			"profile_image_url": "https://img.example/u1.png",
			"client_metadata": {"username": "filmfan"}
		}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	display := p.ResolveDisplay(context.Background(), "user-1")
	assert.Equal(t, "filmfan", display.Username)
	assert.Equal(t, "https://img.example/u1.png", display.ProfileImage)
}

func TestResolveDisplayFallsBackToDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "user-1", "display_name": "Display Name", "client_metadata": {}}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	display := p.ResolveDisplay(context.Background(), "user-1")
	assert.Equal(t, "Display Name", display.Username)
}

func TestResolveDisplayNeverFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	display := p.ResolveDisplay(context.Background(), "0123456789abcdef")
	assert.Equal(t, "User 01234567", display.Username, "provider failure yields the id-derived placeholder")
	assert.Empty(t, display.ProfileImage)
}

func TestResolveDisplayUnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	display := p.ResolveDisplay(context.Background(), "ghost")
	assert.Equal(t, "User ghost", display.Username)
}
