package users

import (
	"fmt"
	"net/url"
	"time"
)

type User struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	ProfilePhoto string    `bson:"profile_photo"`
	Phone        string    `bson:"phone"`
	Bio          string    `bson:"bio"`
	Occupation   string    `bson:"occupation"`
	Address      string    `bson:"address"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profile_photo"`
	Phone        string `json:"phone"`
	Bio          string `json:"bio"`
	Occupation   string `json:"occupation"`
	Address      string `json:"address"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Bio        string `json:"bio"`
	Occupation string `json:"occupation"`
	Address    string `json:"address"`
	Password   string `json:"password"`
}

// AvatarURL derives a generated avatar for the user's display name.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}

// ToResponse strips credentials from the user record.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfilePhoto: u.ProfilePhoto,
		Phone:        u.Phone,
		Bio:          u.Bio,
		Occupation:   u.Occupation,
		Address:      u.Address,
	}
}
