package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/constants"
	apierrors "github.com/yukikurage/club-projects-api/internal/errors"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"gorm.io/gorm"
)

var (
	errNoCredentials  = errors.New("no credentials")
	errUnknownMember  = errors.New("member no longer exists")
	errInactiveMember = errors.New("account is deactivated")
)

// Authenticator resolves the caller's identity from a bearer token or the session cookie.
type Authenticator struct {
	members repository.MemberRepository
	tokens  *auth.TokenManager
}

// NewAuthenticator creates an Authenticator
func NewAuthenticator(members repository.MemberRepository, tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{members: members, tokens: tokens}
}

// RequireAuth rejects requests without a valid credential for an active member
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.resolve(c)
		if err != nil {
			switch {
			case errors.Is(err, errNoCredentials):
				apierrors.Unauthorized(c, "")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, errUnknownMember):
				apierrors.Unauthorized(c, "Not authorized, token failed")
			case errors.Is(err, errInactiveMember):
				apierrors.Unauthorized(c, "Account is deactivated")
			default:
				apierrors.InternalError(c, "")
			}
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when valid credentials are present and
// otherwise lets the request through anonymously
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := a.resolve(c); err == nil {
			setIdentity(c, identity)
		}
		c.Next()
	}
}

func (a *Authenticator) resolve(c *gin.Context) (auth.Identity, error) {
	memberID, err := a.credentialMemberID(c)
	if err != nil {
		return auth.Identity{}, err
	}

	member, err := a.members.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Identity{}, errUnknownMember
		}
		return auth.Identity{}, err
	}
	if !member.IsActive {
		return auth.Identity{}, errInactiveMember
	}

	return auth.IdentityOf(member), nil
}

func (a *Authenticator) credentialMemberID(c *gin.Context) (uint64, error) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return 0, auth.ErrInvalidToken
		}
		return a.tokens.Parse(token)
	}

	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return 0, errNoCredentials
	}
	if id, ok := toUint64(sessions.Default(c).Get(constants.ContextKeyUserID)); ok {
		return id, nil
	}
	return 0, errNoCredentials
}

func setIdentity(c *gin.Context, identity auth.Identity) {
	c.Set(constants.ContextKeyIdentity, identity)
	c.Set(constants.ContextKeyUserID, identity.MemberID)
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

// GetUserID retrieves the current member ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
