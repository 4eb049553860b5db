package handlers

import (
	"fmt"
	"strconv"

	"gofinances/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey holds the authenticated user id as a string
	UserIDContextKey = "user_id"
	// UserContextKey holds the authenticated models.User
	UserContextKey = "user"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserFromContext returns the user set by the auth middleware
func getUserFromContext(c echo.Context) (models.User, error) {
	user, ok := c.Get(UserContextKey).(models.User)
	if !ok || user.ID == "" {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

func getIntQueryParam(c echo.Context, key string, defaultValue int) int {
	valueStr := c.QueryParam(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// getBoolQueryParam reads flags such as ?partial=true. Invalid values are an error.
func getBoolQueryParam(c echo.Context, key string) (bool, error) {
	valueStr := c.QueryParam(key)
	if valueStr == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("query parameter %s must be a boolean", key)
	}
	return value, nil
}
