package entities

import (
	"strings"
	"time"

	"filmorate/pkg/validation"
)

// User представляет пользователя и множество его друзей.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email" validate:"notblank,contains=@"`
	Login    string    `json:"login" validate:"notblank,nowhitespace"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday" validate:"required,notfuture"`
	Friends  IDSet     `json:"friends"`
}

// Validate проверяет форму полей пользователя.
func (u *User) Validate() error {
	if u == nil {
		return ErrNilEntity
	}
	if err := validation.Struct(u); err != nil {
		return Validation(err)
	}
	return nil
}

// ApplyDefaultName подставляет логин вместо пустого имени.
func (u *User) ApplyDefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Friends = u.Friends.Clone()
	return &out
}
