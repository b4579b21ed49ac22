package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/handlers"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, handlers.EnsureAdmin(env.DB, "baker", "flour-power"))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "baker", "password": "flour-power",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}](t, rec)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "baker", resp.Username)
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, handlers.EnsureAdmin(env.DB, "baker", "flour-power"))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "baker", "password": "wrong",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "ghost", "password": "boo",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, handlers.EnsureAdmin(env.DB, "baker", "flour-power"))
	require.NoError(t, handlers.EnsureAdmin(env.DB, "baker", "flour-power"))
}
