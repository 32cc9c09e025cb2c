package account

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin/binding"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/ratelimit"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/internal/platform/cache"
	"github.com/phamdangkhoamet/dkstory/internal/platform/token"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*models.User{}}
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) Update(_ context.Context, id string, fields map[string]any) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
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

func newTestService(t *testing.T, limiter *ratelimit.Limiter) (*Service, *memoryUsers) {
	t.Helper()
	users := newMemoryUsers()
	return NewService(users, token.NewManager("test-secret", time.Hour), limiter, zap.NewNop().Sugar()), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{Name: "Khoa", Email: " Reader@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, "reader@example.com", sess.User.Email)
	require.Equal(t, types.UserRoleUser, sess.User.Role)
	require.False(t, sess.User.IsVip)
	require.Nil(t, sess.User.VipUntil)

	claims, err := token.NewManager("test-secret", time.Hour).Parse(sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, claims.UserID)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "reader@example.com", Password: "secret2"})
	require.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, "READER@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "reader@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterInput_BindingRules(t *testing.T) {
	cases := []RegisterInput{
		{Email: "a@b.c", Password: "secret1"},
		{Name: "x", Password: "secret1"},
		{Name: "x", Email: "a@b.c"},
		{Name: "x", Email: "not-an-email", Password: "secret1"},
		{Name: "x", Email: "a@b.c", Password: "123"},
	}
	for _, in := range cases {
		require.Error(t, binding.Validator.ValidateStruct(in), "%+v", in)
	}
	require.NoError(t, binding.Validator.ValidateStruct(RegisterInput{Name: "x", Email: "a@b.c", Password: "secret1"}))
}

func TestRegisterRejectsBlankName(t *testing.T) {
	svc, users := newTestService(t, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "   ", Email: "a@b.c", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, users.users)
}

func TestLoginSuspended(t *testing.T) {
	svc, users := newTestService(t, nil)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.users["u1"] = &models.User{ID: "u1", Email: "s@example.com", PasswordHash: string(hash), Status: types.UserStatusSuspended}

	_, err = svc.Login(context.Background(), "s@example.com", "secret1")
	require.ErrorIs(t, err, ErrSuspended)
}

func TestLoginRateLimited(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := ratelimit.NewLimiter(cache.NewWindowStore(client), map[string]int{ratelimit.ActionLogin: 2})
	svc, _ := newTestService(t, limiter)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, "x@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = svc.Login(ctx, "x@example.com", "whatever")
	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
	require.Positive(t, limited.RetryAfter)
}

func TestMe(t *testing.T) {
	svc, users := newTestService(t, nil)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	until := now.Add(48 * time.Hour)
	users.users["u1"] = &models.User{ID: "u1", Name: "V", IsVip: true, VipUntil: &until}

	p, err := svc.Me(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, p.IsVip)
	require.True(t, p.VipActive)

	_, err = svc.Me(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newTestService(t, nil)
	users.users["u1"] = &models.User{ID: "u1", Name: "Old", Email: "u1@example.com"}
	ctx := context.Background()

	name, avatar := "  Khoa  ", "https://img.example/a.png"
	p, err := svc.UpdateProfile(ctx, "u1", ProfilePatch{Name: &name, Avatar: &avatar})
	require.NoError(t, err)
	require.Equal(t, "Khoa", p.Name)
	require.Equal(t, avatar, p.Avatar)
	require.Equal(t, "u1@example.com", p.Email)
	require.Equal(t, "Khoa", users.users["u1"].Name)

	blank := " "
	_, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{Name: &blank})
	require.ErrorIs(t, err, ErrInvalidInput)

	p, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{})
	require.NoError(t, err)
	require.Equal(t, "Khoa", p.Name)

	_, err = svc.UpdateProfile(ctx, "ghost", ProfilePatch{Name: &name})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestPublic(t *testing.T) {
	svc, users := newTestService(t, nil)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	expired := now.Add(-time.Hour)
	users.users["u1"] = &models.User{ID: "u1", Name: "V", Email: "secret@example.com", IsVip: true, VipUntil: &expired}

	p, err := svc.Public(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "V", p.Name)
	require.False(t, p.VipActive)

	_, err = svc.Public(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}
