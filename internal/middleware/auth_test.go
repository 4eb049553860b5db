package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gofinances/internal/config"
	"gofinances/internal/errors"
	"gofinances/internal/handlers"
	"gofinances/internal/models"
	"gofinances/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	jwtConfig    *config.JWTConfig
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.jwtConfig = s.newJWTConfig(24 * time.Hour)
	s.tokenService = services.NewTokenService(s.jwtConfig)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) newJWTConfig(duration time.Duration) *config.JWTConfig {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	return &config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "test-issuer",
		AccessTokenDuration: duration,
	}
}

func (s *AuthMiddlewareSuite) okHandler() echo.HandlerFunc {
	return RequireAuth(s.tokenService)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *AuthMiddlewareSuite) serve(handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.Require().NoError(handler(c))
	return rec
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	user := &models.User{ID: "google-oauth2|42", Name: "Rodrigo", Photo: "https://example.com/me.png"}
	token, _, err := s.tokenService.GenerateAccessToken(user)
	s.Require().NoError(err)

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error {
		s.Equal(user.ID, c.Get(handlers.UserIDContextKey))
		s.Equal(*user, c.Get(handlers.UserContextKey))
		s.NotEmpty(c.Get("token_jti"))
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	rec := s.serve(handler, "Bearer "+token)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	rec := s.serve(s.okHandler(), "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidHeaderFormat() {
	rec := s.serve(s.okHandler(), "Basic dXNlcjpwYXNz")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidToken() {
	rec := s.serve(s.okHandler(), "Bearer not.a.token")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenFromOtherKey() {
	other := services.NewTokenService(s.newJWTConfig(time.Hour))
	token, _, err := other.GenerateAccessToken(&models.User{ID: "user-1"})
	s.Require().NoError(err)

	rec := s.serve(s.okHandler(), "Bearer "+token)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	expiredConfig := *s.jwtConfig
	expiredConfig.AccessTokenDuration = time.Millisecond
	token, _, err := services.NewTokenService(&expiredConfig).GenerateAccessToken(&models.User{ID: "user-1"})
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)
	rec := s.serve(s.okHandler(), "Bearer "+token)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthExpiredToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenWithoutUserID() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.jwtConfig.PrivateKey)
	s.Require().NoError(err)

	rec := s.serve(s.okHandler(), "Bearer "+token)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidClaims), s.errorCode(rec))
}
