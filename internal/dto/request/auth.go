package request

type SignupRequest struct {
	UserID   string `json:"user_id" validate:"required,alphanum,min=4,max=15"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,numeric,min=10,max=11"`
	IDNum    string `json:"idnum" validate:"required,numeric,len=13"`
}

type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignoutRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest sets a new password once the account email is verified.
type ForgotPasswordRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Code  string `json:"verify_code" validate:"required,numeric,len=6"`
}
