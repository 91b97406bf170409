package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=60"`
	Age      int    `json:"age" validate:"omitempty,min=18,max=120"`
	Gender   string `json:"gender" validate:"omitempty,is-gender"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// PhoneCodeRequest - запрос SMS-кода на номер.
type PhoneCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// PhoneConfirmRequest - подтверждение номера полученным кодом.
type PhoneConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}
