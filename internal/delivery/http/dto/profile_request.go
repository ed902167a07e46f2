package dto

import "skill-passport/internal/domain/profile"

type MergeProfileRequest struct {
	UserID    string             `mapstructure:"user_uid"`
	FormInput *profile.FormInput `mapstructure:"form_input"`
}
