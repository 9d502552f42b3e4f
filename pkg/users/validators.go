package users

type UpdateProfilePayload struct {
	DisplayName   *string `json:"display_name,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
	AvatarURL     *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	FavoriteGenre *string `json:"favorite_genre,omitempty" mod:"trim" validate:"omitempty,max=100"`
	ReadingGoal   *int    `json:"reading_goal,omitempty" validate:"omitempty,min=1,max=1000"`
}

type UpdatePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}
