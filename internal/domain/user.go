package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	AvatarURL    *string    `json:"avatar_url"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
	RoleID    *int    `json:"role_id"`
	AvatarURL *string `json:"avatar_url"`
	Deleted   *bool   `json:"deleted"`
}

type Claims struct {
	UserID        int
	UserName      string
	UserLastname  string
	UserEmail     string
	UserActive    bool
	UserRoleID    int
	UserAvatarURL *string
	jwt.RegisteredClaims
}

// MetaConnection guarda o vínculo de um usuário do dashboard com a Meta:
// o id do usuário na Graph API e o token de longa duração obtido no OAuth.
type MetaConnection struct {
	ID              string     `json:"id"`
	UserID          int        `json:"user_id"`
	MetaUserID      string     `json:"meta_user_id"`
	LongAccessToken string     `json:"-"`
	ExpiredAt       *time.Time `json:"expired_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasValidLongToken informa se o token de longa duração ainda pode ser usado.
// ExpiredAt nulo significa que a Meta não informou expiração.
func (c *MetaConnection) HasValidLongToken(now time.Time) bool {
	if c == nil || c.LongAccessToken == "" {
		return false
	}
	if c.ExpiredAt == nil {
		return true
	}
	return c.ExpiredAt.After(now)
}
