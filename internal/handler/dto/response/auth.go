package response

import (
	"time"

	"realty-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         *AuthorizedUser `json:"user"`
}

type AuthorizedUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"isActive"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ProfileResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

func FromAuthorizedUserView(view *queries.AuthorizedUserView) *AuthorizedUser {
	var out AuthorizedUser
	_ = copier.Copy(&out, view)
	return &out
}

func FromUserProfileView(view *queries.UserProfileView) *ProfileResponse {
	var out ProfileResponse
	_ = copier.Copy(&out, view)
	return &out
}

func FromUserProfileViews(views []*queries.UserProfileView) []*ProfileResponse {
	out := make([]*ProfileResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromUserProfileView(v))
	}
	return out
}
