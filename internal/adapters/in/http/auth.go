package http

import (
	"strings"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// principalContextKey is the echo context key the auth middleware stores the
// resolved principal under.
const principalContextKey = "principal"

// identityClaims is the token payload the identity provider issues: the
// subject carries the user id, plus the email and role the authorization
// checks need.
type identityClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator validates bearer tokens and turns their claims into a
// domain Principal.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator verifying tokens with the given
// HMAC secret.
func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved principal in the request context for the handlers.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := a.resolve(ctx)
			if err != nil {
				return writeError(ctx, err)
			}
			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// OptionalMiddleware resolves a principal when a bearer token is present but
// lets anonymous requests through. Used by the delivery confirmation route,
// where the receiver may have no account.
func (a *Authenticator) OptionalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(ctx)
			}
			principal, err := a.resolve(ctx)
			if err != nil {
				return writeError(ctx, err)
			}
			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// resolve parses and verifies the bearer token and builds the principal.
func (a *Authenticator) resolve(ctx echo.Context) (account.Principal, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return account.Principal{}, errs.NewUnauthorizedError("missing authorization header")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return account.Principal{}, errs.NewUnauthorizedError("authorization header is not a bearer token")
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, prefix), claims,
		func(_ *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return account.Principal{}, errs.NewUnauthorizedErrorWithCause("token is invalid", err)
	}
	if !token.Valid {
		return account.Principal{}, errs.NewUnauthorizedError("token is invalid")
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return account.Principal{}, errs.NewUnauthorizedErrorWithCause("token subject is not a user id", err)
	}

	role, err := account.RoleFromString(claims.Role)
	if err != nil {
		return account.Principal{}, errs.NewUnauthorizedErrorWithCause("token carries an unknown role", err)
	}

	return account.NewPrincipal(userID, claims.Email, role)
}

// principalFrom extracts the principal the auth middleware stored.
func principalFrom(ctx echo.Context) (account.Principal, error) {
	principal, ok := ctx.Get(principalContextKey).(account.Principal)
	if !ok {
		return account.Principal{}, errs.NewUnauthorizedError("request carries no authenticated principal")
	}
	return principal, nil
}
