package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

func TestTokens_IssueParse(t *testing.T) {
	tokens := auth.NewTokens([]byte("secret"), time.Hour)

	raw, err := tokens.Issue("user-1", settings.UserClient, "client-1")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, settings.UserClient, claims.Role)
	assert.Equal(t, "client-1", claims.ClientID)
	assert.False(t, claims.IsAdmin())
}

func TestTokens_Parse(t *testing.T) {
	tokens := auth.NewTokens([]byte("secret"), time.Hour)
	other := auth.NewTokens([]byte("other"), time.Hour)
	fallback := auth.NewTokens([]byte("secret"), -time.Hour)

	foreign, err := other.Issue("user-1", settings.UserAdmin, "")
	require.NoError(t, err)

	orphan, err := tokens.Issue("user-2", settings.UserClient, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{name: "wrong secret", raw: foreign},
		{name: "empty", raw: ""},
		{name: "client without client id", raw: orphan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Parse(tt.raw)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}

	// a non-positive ttl falls back to the default
	raw, err := fallback.Issue("user-1", settings.UserAdmin, "")
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.NoError(t, err)
}

func TestMiddleware(t *testing.T) {
	tokens := auth.NewTokens([]byte("secret"), time.Hour)

	admin, err := tokens.Issue("admin-1", settings.UserAdmin, "")
	require.NoError(t, err)

	client, err := tokens.Issue("user-2", settings.UserClient, "client-1")
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, found := auth.FromContext(r.Context())
		if !found {
			w.WriteHeader(http.StatusTeapot)
			return
		}

		w.Header().Set("X-User", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})

	handler := auth.Middleware(tokens)(auth.RequireRole(settings.UserAdmin)(ok))

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantUser string
	}{
		{name: "missing header", wantCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer abc", wantCode: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + client, wantCode: http.StatusForbidden},
		{name: "admin", header: "Bearer " + admin, wantCode: http.StatusOK, wantUser: "admin-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}

func TestClientScope(t *testing.T) {
	ctx := auth.WithClaims(t.Context(), &auth.Claims{Role: settings.UserClient, ClientID: "client-1"})

	id, restricted := auth.ClientScope(ctx)
	assert.True(t, restricted)
	assert.Equal(t, "client-1", id)

	_, restricted = auth.ClientScope(auth.WithClaims(t.Context(), &auth.Claims{Role: settings.UserAdmin}))
	assert.False(t, restricted)

	_, restricted = auth.ClientScope(t.Context())
	assert.False(t, restricted)
}

func TestCourierScope(t *testing.T) {
	ctx := auth.WithClaims(t.Context(), &auth.Claims{UserID: "entregador-1", Role: settings.UserCourier})

	id, restricted := auth.CourierScope(ctx)
	assert.True(t, restricted)
	assert.Equal(t, "entregador-1", id)

	_, restricted = auth.ClientScope(ctx)
	assert.False(t, restricted)

	_, restricted = auth.CourierScope(auth.WithClaims(t.Context(), &auth.Claims{Role: settings.UserClient, ClientID: "client-1"}))
	assert.False(t, restricted)

	_, restricted = auth.CourierScope(t.Context())
	assert.False(t, restricted)
}
