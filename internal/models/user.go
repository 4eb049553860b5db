package models

// User is the identity handed over by the authentication provider. It is never stored here.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// UserFromClaims extracts the user identity carried by a validated token
func UserFromClaims(claims *CustomClaims) User {
	return User{
		ID:    claims.UserID,
		Name:  claims.Name,
		Photo: claims.Photo,
	}
}
