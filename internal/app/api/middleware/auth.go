package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/phamdangkhoamet/dkstory/internal/platform/token"
	"github.com/phamdangkhoamet/dkstory/pkg/config"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

const identityKey = "identity"

type IdentitySource string

const (
	IdentitySourceToken IdentitySource = "token"
	// IdentitySourceQuery is the development fallback (?userId=).
	IdentitySourceQuery IdentitySource = "query"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Role   types.UserRole
	Source IdentitySource
}

// IdentityFrom returns the caller resolved by IdentityResolver.Resolve.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.UserID != ""
}

// UserIDFrom returns the caller's user id or "" for anonymous requests.
func UserIDFrom(c *gin.Context) string {
	id, _ := IdentityFrom(c)
	return id.UserID
}

type IdentityResolver struct {
	tokens     *token.Manager
	allowQuery bool
}

func NewIdentityResolver(tokens *token.Manager, cfg *config.Config) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, allowQuery: cfg.QueryUserIDFallback()}
}

// Resolve identifies the caller when it can and never requires it. A bearer
// token that is present but invalid is rejected with 401.
func (r *IdentityResolver) Resolve(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id Identity
		if raw, ok := bearerToken(c); ok {
			claims, err := r.tokens.Parse(raw)
			if err != nil {
				response.AbortFail(c, response.APIResponseCodeUnauthenticated, "invalid or expired token")
				return
			}
			id = Identity{UserID: claims.UserID, Role: claims.Role, Source: IdentitySourceToken}
		} else if r.allowQuery {
			if uid := strings.TrimSpace(c.Query("userId")); uid != "" {
				id = Identity{UserID: uid, Role: types.UserRoleUser, Source: IdentitySourceQuery}
			}
		}

		if id.UserID != "" {
			c.Set(identityKey, id)
			c.Request = c.Request.WithContext(logctx.WithUserID(c.Request.Context(), id.UserID))
			setRequestLogger(c, logctx.FromGin(c, base).With("user_id", id.UserID))
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(h[7:])
	return raw, raw != ""
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			response.AbortFail(c, response.APIResponseCodeUnauthenticated, "authentication required")
			return
		}
		c.Next()
	}
}

// RequireRole admits token-authenticated callers holding one of roles.
func RequireRole(roles ...types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.AbortFail(c, response.APIResponseCodeUnauthenticated, "authentication required")
			return
		}
		if id.Source != IdentitySourceToken || !lo.Contains(roles, id.Role) {
			response.AbortFail(c, response.APIResponseCodeForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
