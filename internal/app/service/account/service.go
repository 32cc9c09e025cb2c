package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/ratelimit"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/internal/platform/token"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSuspended          = errors.New("account suspended")
	ErrUserNotFound       = errors.New("user not found")
)

// RateLimitedError is returned when too many logins were attempted.
type RateLimitedError struct {
	RetryAfter int64
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many attempts, retry in %ds", e.RetryAfter)
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ProfilePatch updates the caller's own profile; nil means unchanged.
type ProfilePatch struct {
	Name   *string `json:"name" binding:"omitempty,max=100"`
	Avatar *string `json:"avatar" binding:"omitempty,max=2048"`
}

type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Avatar    string           `json:"avatar"`
	Role      types.UserRole   `json:"role"`
	Status    types.UserStatus `json:"status"`
	IsVip     bool             `json:"isVip"`
	VipUntil  *time.Time       `json:"vipUntil"`
	VipActive bool             `json:"vipActive"`
}

// PublicProfile is what any visitor may see about a user.
type PublicProfile struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Role      types.UserRole `json:"role"`
	VipActive bool           `json:"vipActive"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Profile  `json:"user"`
}

type Service struct {
	store   UserStore
	tokens  *token.Manager
	limiter *ratelimit.Limiter
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewService(store UserStore, tokens *token.Manager, limiter *ratelimit.Limiter, log *zap.SugaredLogger) *Service {
	return &Service{store: store, tokens: tokens, limiter: limiter, log: log, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
	}
	email := normalizeEmail(in.Email)

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           tool.GenerateUUIDV7(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         types.UserRoleUser,
		Status:       types.UserStatusActive,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("user registered", "user_id", user.ID)
	return s.session(user)
}

// Login verifies credentials. Attempts are rate limited per email.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	retryAfter, allowed, err := s.limiter.Allow(ctx, ratelimit.ActionLogin, email)
	if err != nil {
		// a broken limiter must not lock everybody out
		logctx.FromCtx(ctx, s.log).Warnw("login rate limiter failed", "err", err)
	} else if !allowed {
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	}

	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == types.UserStatusSuspended {
		return nil, ErrSuspended
	}
	return s.session(user)
}

func (s *Service) Me(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(user), nil
}

// UpdateProfile applies patch to the caller's own account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if patch.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*patch.Avatar)
	}
	if len(updates) == 0 {
		return s.Me(ctx, userID)
	}

	user, err := s.store.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("profile updated", "user_id", userID, "fields", len(updates))
	return s.profile(user), nil
}

// Public returns the visitor-facing view of a user.
func (s *Service) Public(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		ID:        user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Role:      user.Role,
		VipActive: user.VipActive(s.now()),
	}, nil
}

// User returns the account record behind an identity.
func (s *Service) User(ctx context.Context, userID string) (*models.User, error) {
	return s.store.FindByID(ctx, userID)
}

func (s *Service) session(user *models.User) (*Session, error) {
	raw, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{Token: raw, ExpiresAt: expiresAt, User: s.profile(user)}, nil
}

func (s *Service) profile(u *models.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		Status:    u.Status,
		IsVip:     u.IsVip,
		VipUntil:  u.VipUntil,
		VipActive: u.VipActive(s.now()),
	}
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
