package domain

import (
	"errors"
	"time"
)

var ErrSuperseded = errors.New("superseded by a newer request")

// Activity actions recorded in the activity log.
const (
	ActionLogin           = "login"
	ActionLoginFailed     = "login_failed"
	ActionLogout          = "logout"
	ActionRegister        = "register"
	ActionPasswordRecover = "password_recover"
	ActionProfileUpdate   = "profile_update"
	ActionCartAdd         = "cart_add"
	ActionCartRemove      = "cart_remove"
	ActionCartConfirm     = "cart_confirm"
	ActionUserAdd         = "user_add"
	ActionUserUpdate      = "user_update"
	ActionUserDelete      = "user_delete"
)

// ActivityEvent is one entry of the activity log.
type ActivityEvent struct {
	Email  string    `json:"email" bson:"email"`
	Action string    `json:"action" bson:"action"`
	Detail string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At     time.Time `json:"at" bson:"at"`
}
