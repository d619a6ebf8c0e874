package request

type CreateUserRequest struct {
	Name     string            `json:"name" validate:"required,min=2,max=100"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required,min=8,max=72"`
	Phone    *string           `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Address  *string           `json:"address,omitempty" validate:"omitempty,max=500"`
	Role     string            `json:"role" validate:"required,oneof=customer vendor admin"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type UpdateUserRequest struct {
	Name      *string           `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone     *string           `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Address   *string           `json:"address,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string           `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}
