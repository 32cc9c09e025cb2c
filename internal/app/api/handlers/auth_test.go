package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register", "", account.RegisterInput{Name: "Lan", Email: "Lan@Example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	registered := decode[response.APIResponse[account.Session]](t, w).Data
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "lan@example.com", registered.User.Email)
	require.False(t, registered.User.IsVip)

	w = env.do(http.MethodPost, "/api/auth/register", "", account.RegisterInput{Name: "Lan", Email: "lan@example.com", Password: "secret1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "lan@example.com", Password: "wrong-pw"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "lan@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[response.APIResponse[account.Session]](t, w).Data

	w = env.do(http.MethodGet, "/api/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[response.APIResponse[account.Profile]](t, w).Data
	require.Equal(t, registered.User.ID, me.ID)
	require.False(t, me.VipActive)
}

func TestAuth_MeRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/auth/me", "", nil).Code)
	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/auth/me", "garbage", nil).Code)
}

func TestAuth_BindingRejectsMalformedBodies(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		path  string
		body  any
		field string
	}{
		{"/api/auth/register", account.RegisterInput{Name: "Lan", Email: "not-an-email", Password: "secret1"}, "Email"},
		{"/api/auth/register", account.RegisterInput{Name: "Lan", Email: "lan@example.com", Password: "123"}, "Password"},
		{"/api/auth/register", account.RegisterInput{Email: "lan@example.com", Password: "secret1"}, "Name"},
		{"/api/auth/login", LoginRequest{Email: "lan", Password: "secret1"}, "Email"},
		{"/api/auth/login", LoginRequest{Email: "lan@example.com"}, "Password"},
	}
	for _, tc := range cases {
		w := env.do(http.MethodPost, tc.path, "", tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, "%s %+v", tc.path, tc.body)
		res := decode[response.APIResponse[any]](t, w)
		require.Equal(t, response.APIResponseCodeBadRequest, res.Code)
		require.Contains(t, res.Message, tc.field)
	}
	require.Empty(t, env.users.users)
}
