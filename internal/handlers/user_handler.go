package handlers

import (
	"net/http"

	"gofinances/internal/dto"
	"gofinances/internal/errors"

	"github.com/labstack/echo/v4"
)

// UserHandler answers identity questions from the validated token. Users are never stored.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	return c.JSON(http.StatusOK, dto.UserProfileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Photo: user.Photo,
	})
}
