package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Response struct {
	ID        uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse never exposes the password hash.
func ToResponse(u *user.User) Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}
