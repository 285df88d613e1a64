package dto

import (
	"time"

	"journalku_backend/internals/features/users/user/model"
)

type UserDTO struct {
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name"`
	UserEmail          string    `json:"user_email"`
	UserBio            *string   `json:"user_bio"`
	NoOfEntries        int       `json:"no_of_entries"`
	NoOfPublishedEntries int     `json:"no_of_published_entries"`
	NoOfLikes          int       `json:"no_of_likes"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToUserDTO(m model.UserModel) UserDTO {
	return UserDTO{
		UserID:               m.UserID,
		UserName:             m.UserName,
		UserEmail:            m.UserEmail,
		UserBio:              m.UserBio,
		NoOfEntries:          m.UserNoOfEntries,
		NoOfPublishedEntries: m.UserNoOfPublishedEntries,
		NoOfLikes:            m.UserNoOfLikes,
		CreatedAt:            m.UserCreatedAt,
	}
}

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	UserBio  *string `json:"user_bio" validate:"omitempty,max=500"`
}
