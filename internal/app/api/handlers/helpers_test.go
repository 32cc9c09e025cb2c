package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/internal/platform/token"
	"github.com/phamdangkhoamet/dkstory/pkg/config"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

// memUsers backs the payment, account and viewer lookups with one map.
type memUsers struct {
	mu     sync.Mutex
	users  map[string]*models.User
	writes int
}

func newMemUsers(users ...*models.User) *memUsers {
	m := &memUsers{users: map[string]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) UpdateEntitlement(_ context.Context, userID string, update func(u *models.User) error) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.users[userID]
	if !ok {
		return nil, payment.ErrUserNotFound
	}
	next := *cur
	if err := update(&next); err != nil {
		return nil, err
	}
	m.users[userID] = &next
	m.writes++
	out := next
	return &out, nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return account.ErrEmailTaken
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Update(_ context.Context, id string, fields map[string]any) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["avatar"].(string); ok {
		u.Avatar = v
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) User(ctx context.Context, id string) (*models.User, error) {
	return m.FindByID(ctx, id)
}

func (m *memUsers) get(id string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.users[id]
}

type memContent struct {
	novels   map[string]*models.Novel
	chapters map[string][]*models.Chapter
}

func newMemContent() *memContent {
	return &memContent{novels: map[string]*models.Novel{}, chapters: map[string][]*models.Chapter{}}
}

func (f *memContent) addNovel(id string, nos ...int) {
	f.novels[id] = &models.Novel{ID: id, Title: "Novel " + id}
	for _, no := range nos {
		f.chapters[id] = append(f.chapters[id], &models.Chapter{
			NovelID: id, No: no, Title: fmt.Sprintf("Chương %d", no), Content: fmt.Sprintf("content of %d", no),
		})
	}
}

func (f *memContent) GetNovel(_ context.Context, id string) (*models.Novel, error) {
	n, ok := f.novels[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return n, nil
}

func (f *memContent) ListChapterRefs(_ context.Context, novelID string) ([]catalog.ChapterRef, error) {
	refs := make([]catalog.ChapterRef, 0)
	for _, ch := range f.chapters[novelID] {
		refs = append(refs, catalog.ChapterRef{No: ch.No, Title: ch.Title})
	}
	return refs, nil
}

func (f *memContent) GetChapter(_ context.Context, novelID string, no int) (*models.Chapter, error) {
	for _, ch := range f.chapters[novelID] {
		if ch.No == no {
			return ch, nil
		}
	}
	return nil, catalog.ErrNotFound
}

type testEnv struct {
	router  *gin.Engine
	users   *memUsers
	content *memContent
	tokens  *token.Manager
}

// newTestEnv mounts the reader, auth, user and sandbox routes the way the server does.
func newTestEnv(t *testing.T, users ...*models.User) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()

	env := &testEnv{
		users:   newMemUsers(users...),
		content: newMemContent(),
		tokens:  token.NewManager("test-secret", time.Hour),
	}
	cfg := &config.Config{Env: config.EnvDev, Auth: config.AuthConfig{AllowQueryUserID: true}}

	pay := payment.NewService(env.users, nil, nil, log, time.UTC)
	accounts := account.NewService(env.users, env.tokens, nil, log)
	reader := catalog.NewReader(env.content, entitlement.NewGate(false))

	r := gin.New()
	api := r.Group("/api")
	api.Use(mw.TraceMiddleware(), mw.RequestLoggerMiddleware(log), mw.NewIdentityResolver(env.tokens, cfg).Resolve(log))
	RegisterAuthRoutes(api.Group("/auth"), accounts, log)
	RegisterNovelRoutes(api.Group("/novels"), nil, reader, env.users, log)
	RegisterUserRoutes(api.Group("/users"), accounts, nil, log)
	RegisterSandboxPaymentRoutes(api.Group("/payments/sandbox"), pay, log, func(c *gin.Context) { c.Next() })
	env.router = r
	return env
}

func (e *testEnv) bearer(t *testing.T, userID string) string {
	t.Helper()
	raw, _, err := e.tokens.Issue(userID, types.UserRoleUser)
	require.NoError(t, err)
	return raw
}

func (e *testEnv) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
