package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

func readChapter(t *testing.T, env *testEnv, path, bearer string) catalog.ChapterView {
	t.Helper()
	w := env.do(http.MethodGet, path, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[response.APIResponse[catalog.ChapterView]](t, w).Data
}

func TestReadChapter_PurchaseUnlocksLatest(t *testing.T) {
	env := newTestEnv(t, &models.User{ID: "u1"})
	env.content.addNovel("n1", 1, 2, 3)
	bearer := env.bearer(t, "u1")

	view := readChapter(t, env, "/api/novels/n1/chapters/3", bearer)
	require.True(t, view.Locked)
	require.Nil(t, view.Chapter.Content)
	require.Equal(t, catalog.LockedMessage, view.Message)
	require.Equal(t, 3, view.LatestNo)

	view = readChapter(t, env, "/api/novels/n1/chapters/2", bearer)
	require.False(t, view.Locked)
	require.Equal(t, "content of 2", *view.Chapter.Content)

	w := env.do(http.MethodPost, "/api/payments/sandbox/pay", bearer, SandboxPayRequest{Plan: "vip1d"})
	require.Equal(t, http.StatusOK, w.Code)

	view = readChapter(t, env, "/api/novels/n1/chapters/3", bearer)
	require.False(t, view.Locked)
	require.Equal(t, "content of 3", *view.Chapter.Content)
	require.Empty(t, view.Message)
}

func TestReadChapter_AnonymousReadsAsGuest(t *testing.T) {
	env := newTestEnv(t)
	env.content.addNovel("n1", 1, 2)

	view := readChapter(t, env, "/api/novels/n1/chapters/2", "")
	require.True(t, view.Locked)

	// an identity with no account behind it reads as a guest too
	view = readChapter(t, env, "/api/novels/n1/chapters/2?userId=ghost", "")
	require.True(t, view.Locked)
}

func TestListChapters_FlagsLatest(t *testing.T) {
	env := newTestEnv(t)
	env.content.addNovel("n1", 1, 2, 5)

	w := env.do(http.MethodGet, "/api/novels/n1/chapters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[response.APIResponse[[]catalog.ChapterListItem]](t, w).Data
	require.Len(t, items, 3)
	require.False(t, items[0].Locked)
	require.False(t, items[1].Locked)
	require.True(t, items[2].Locked)
	require.Equal(t, 5, items[2].No)
}

func TestReadChapter_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.content.addNovel("n1", 1, 2)

	require.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/novels/n1/chapters/abc", "", nil).Code)
	require.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/novels/n1/chapters/0", "", nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/novels/n1/chapters/9", "", nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/novels/missing/chapters/1", "", nil).Code)
}

func TestCreateNovel_RequiresUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/novels", "", map[string]string{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
