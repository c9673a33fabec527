package entity

import "time"

type User struct {
	Seq                int64      `db:"seq"`
	UserID             string     `db:"user_id"`
	PasswordHash       string     `db:"password"`
	Name               string     `db:"name"`
	Email              string     `db:"email"`
	Phone              string     `db:"phone"`
	IDNum              string     `db:"idnum"`
	Profile            *string    `db:"profile"`
	IsBroker           bool       `db:"is_broker"`
	SignupDate         time.Time  `db:"signup_date"`
	PasswordUpdateDate time.Time  `db:"password_update_date"`
	LastLogin          time.Time  `db:"last_login"`
	LastLogout         *time.Time `db:"last_logout"`
}

// UserPatch holds the profile fields an update may overwrite; nil means keep.
type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}
