package entity

import "time"

// User представляет модель пользователя системы
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"John Doe"`
	Email        string    `json:"email" db:"email" example:"user@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"` // Это поле не будет включено в JSON
	TokenDigest  string    `json:"-" db:"token_digest"`  // Хранится только хэш токена
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile ответ на запрос собственного профиля
type UserProfile struct {
	ID     int64   `json:"id" example:"1"`
	Name   string  `json:"name" example:"John Doe"`
	Email  string  `json:"email" example:"user@example.com"`
	Events []Event `json:"events"`
}

// NewUserProfile собирает профиль пользователя вместе с его событиями
func NewUserProfile(user User, events []Event) UserProfile {
	if events == nil {
		events = []Event{}
	}
	return UserProfile{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Events: events,
	}
}

// RegisterRequest данные для регистрации
type RegisterRequest struct {
	Name                 string `json:"name" example:"John Doe"`
	Email                string `json:"email" example:"user@example.com"`
	Password             string `json:"password" example:"qwerty"`
	PasswordConfirmation string `json:"password_confirmation" example:"qwerty"`
}

// UpdateUserRequest частичное обновление профиля: nil означает "не менять"
type UpdateUserRequest struct {
	Name                 *string `json:"name,omitempty" example:"Jane Doe"`
	Email                *string `json:"email,omitempty" example:"newemail@example.com"`
	Password             *string `json:"password,omitempty" example:"newpassword"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty" example:"newpassword"`
	RegenerateToken      bool    `json:"regenerate_token,omitempty"`
}

// LoginRequest данные для входа
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"qwerty"`
}

// LoginResponse ответ с учетными данными после входа
type LoginResponse struct {
	Message string `json:"message" example:"Logged in successfully"`
	Token   string `json:"token" example:"q3Vh0v1n..."`
}

// UpdateUserResponse профиль после обновления; Token заполнен только при перевыпуске
type UpdateUserResponse struct {
	UserProfile
	Token string `json:"token,omitempty"`
}
