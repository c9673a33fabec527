package response

import (
	"time"

	"classifieds-market/internal/data/entity"
)

type UserResponse struct {
	Seq                int64      `json:"seq"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	IDNum              string     `json:"idnum"`
	Profile            *string    `json:"profile"`
	IsBroker           bool       `json:"is_broker"`
	SignupDate         time.Time  `json:"signup_date"`
	PasswordUpdateDate time.Time  `json:"password_update_date"`
	LastLogin          time.Time  `json:"last_login"`
	LastLogout         *time.Time `json:"last_logout"`
}

// UserToResponse drops the credential hash.
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Seq:                user.Seq,
		UserID:             user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		IDNum:              user.IDNum,
		Profile:            user.Profile,
		IsBroker:           user.IsBroker,
		SignupDate:         user.SignupDate,
		PasswordUpdateDate: user.PasswordUpdateDate,
		LastLogin:          user.LastLogin,
		LastLogout:         user.LastLogout,
	}
}

type ForgotIDResponse struct {
	UserID string `json:"user_id"`
}

type SavedItemResponse struct {
	ItemSeq int64 `json:"item_seq"`
	Saved   bool  `json:"saved"`
}
