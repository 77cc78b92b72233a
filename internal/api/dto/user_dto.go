package dto

import "github.com/RoyceAzure/lab/shopcart/internal/domain/model"

type UserDTO struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AccessLevel string `json:"access_level"`
	IsActive    bool   `json:"is_active"`
}

func ConvertUserToDTO(user *model.User) UserDTO {
	return UserDTO{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		AccessLevel: string(user.AccessLevel),
		IsActive:    user.IsActive,
	}
}

type IdentityDTO struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	AccessLevel string `json:"access_level"`
}

func ConvertIdentityToDTO(identity *model.Identity) IdentityDTO {
	return IdentityDTO{
		Username:    identity.Username,
		Email:       identity.Email,
		AccessLevel: string(identity.AccessLevel),
	}
}
