package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "storefront.actor"

// Claims is the bearer token payload issued by the identity provider. The
// subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type authError struct {
	message string
	cause   error
}

func (e *authError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *authError) Unwrap() error {
	return e.cause
}

// Authenticator verifies HS256 bearer tokens and resolves them to an
// identity.Actor.
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret), issuer: issuer}, nil
}

// Middleware rejects requests without a valid token and stores the actor on
// the echo context for the handlers.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return writeError(ctx, http.StatusUnauthorized, msgUnauthorized)
			}

			actor, err := a.Parse(strings.TrimSpace(raw))
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, msgInvalidToken)
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// Parse validates the token signature, expiry and issuer and builds the actor.
func (a *Authenticator) Parse(token string) (identity.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return identity.Actor{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return identity.Actor{}, jwt.ErrTokenInvalidClaims
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return identity.Actor{}, fmt.Errorf("subject: %w", err)
	}
	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.NewActor(id, claims.Email, role)
}

// Issue signs a token for actor. The service itself never logs users in; this
// is used by tooling and tests.
func (a *Authenticator) Issue(actor identity.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: actor.Email(),
		Role:  actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func actorFrom(ctx echo.Context) (identity.Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(identity.Actor)
	if !ok {
		return identity.Actor{}, &authError{message: msgUnauthorized}
	}
	return actor, nil
}
