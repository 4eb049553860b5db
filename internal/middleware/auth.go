package middleware

import (
	stderrors "errors"

	"gofinances/internal/errors"
	"gofinances/internal/handlers"
	"gofinances/internal/models"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT token.
// The token's user id namespaces every ledger access further down the chain.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				switch {
				case stderrors.Is(err, services.ErrExpiredToken):
					return handlers.SendError(c, errors.AuthExpiredToken)
				case stderrors.Is(err, services.ErrMissingUserID):
					return handlers.SendError(c, errors.AuthInvalidClaims)
				default:
					return handlers.SendError(c, errors.AuthInvalidTokenFormat)
				}
			}

			user := models.UserFromClaims(claims)

			c.Set(handlers.UserIDContextKey, user.ID)
			c.Set(handlers.UserContextKey, user)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
