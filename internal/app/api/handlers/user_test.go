package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

func TestUsers_MyProfile(t *testing.T) {
	env := newTestEnv(t, &models.User{ID: "u1", Name: "Lan", Email: "lan@example.com", Role: types.UserRoleUser})
	bearer := env.bearer(t, "u1")

	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/users/me", "", nil).Code)

	w := env.do(http.MethodGet, "/api/users/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[response.APIResponse[account.Profile]](t, w).Data
	require.Equal(t, "lan@example.com", me.Email)

	w = env.do(http.MethodPut, "/api/users/me", bearer, map[string]string{"name": " Lan Anh ", "avatar": "https://img.example/lan.png"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[response.APIResponse[account.Profile]](t, w).Data
	require.Equal(t, "Lan Anh", updated.Name)
	require.Equal(t, "https://img.example/lan.png", updated.Avatar)
	require.Equal(t, "Lan Anh", env.users.get("u1").Name)

	w = env.do(http.MethodPut, "/api/users/me", bearer, map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Lan Anh", env.users.get("u1").Name)
}

func TestUsers_PublicProfileHidesEmail(t *testing.T) {
	env := newTestEnv(t, &models.User{ID: "u1", Name: "Lan", Email: "lan@example.com", Role: types.UserRoleAuthor})

	w := env.do(http.MethodGet, "/api/users/u1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotContains(t, w.Body.String(), "lan@example.com")
	p := decode[response.APIResponse[account.PublicProfile]](t, w).Data
	require.Equal(t, "Lan", p.Name)
	require.Equal(t, types.UserRoleAuthor, p.Role)

	require.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/users/ghost", "", nil).Code)
}
