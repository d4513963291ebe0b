package handlers

import (
	"strconv"
	"time"

	"github.com/photobook/user-image-service/internal/domain/entity"
)

// userView is the public projection of a user. It has no password field.
type userView struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Photo     *string   `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		UUID:      u.UUID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, newUserView(&users[i]))
	}
	return out
}

// loginUserView is the reduced user returned next to a token
type loginUserView struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Photo    *string `json:"photo"`
	UUID     string  `json:"uuid"`
}

type imageView struct {
	ID          int64     `json:"id"`
	UserUUID    string    `json:"userUuid"`
	ContentType string    `json:"contentType"`
	Size        int       `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newImageView(img *entity.Image) imageView {
	return imageView{
		ID:          img.ID,
		UserUUID:    img.UserUUID.String(),
		ContentType: img.ContentType,
		Size:        len(img.Data),
		URL:         "/images/" + strconv.FormatInt(img.ID, 10),
		CreatedAt:   img.CreatedAt,
		UpdatedAt:   img.UpdatedAt,
	}
}
