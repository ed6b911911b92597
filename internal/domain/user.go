package domain

import "time"

// User is an account holder. At least one of Email/Phone is always set;
// both are unique across the users table independently.
type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email,omitempty" dynamodbav:"email"`
	Phone        string     `json:"phone,omitempty" dynamodbav:"phone"`
	FullName     string     `json:"full_name" dynamodbav:"full_name"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool       `json:"is_verified" dynamodbav:"is_verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type VerifyRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,len=6"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type ResetPasswordRequest struct {
	Identifier  string `json:"identifier" validate:"required"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

type ResendVerificationRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}
