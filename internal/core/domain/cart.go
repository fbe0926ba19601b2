package domain

import (
	"errors"
	"fmt"
)

var ErrItemNotFound = errors.New("appointment not found")

// CartItem is a booked appointment. (Email, Service) is unique.
type CartItem struct {
	ID      int    `json:"id,omitempty"`
	Service string `json:"servicio"`
	Email   string `json:"usuario"`
}

// Matches reports whether other identifies the same appointment: by id when
// other carries one, otherwise by the (service, email) pair.
func (i CartItem) Matches(other CartItem) bool {
	if other.ID != 0 {
		return i.ID == other.ID
	}
	return i.Service == other.Service && i.Email == other.Email
}

// AddItemOutcome tags the result of a booking attempt.
type AddItemOutcome string

const (
	AddItemOK          AddItemOutcome = "ok"
	AddItemNotLoggedIn AddItemOutcome = "not_logged_in"
	AddItemDuplicate   AddItemOutcome = "duplicate"
)

// AddItemResult is returned by a booking attempt. Callers branch on Outcome;
// Message is for display only.
type AddItemResult struct {
	Outcome AddItemOutcome
	Message string
	Item    *CartItem
}

// Success reports whether the item was added.
func (r AddItemResult) Success() bool {
	return r.Outcome == AddItemOK
}

func NotLoggedInResult() AddItemResult {
	return AddItemResult{Outcome: AddItemNotLoggedIn, Message: "You must sign in to book an appointment."}
}

func DuplicateResult() AddItemResult {
	return AddItemResult{Outcome: AddItemDuplicate, Message: "This appointment is already in your list."}
}

func AddedResult(item CartItem) AddItemResult {
	return AddItemResult{
		Outcome: AddItemOK,
		Message: fmt.Sprintf("%q was added to your booked appointments.", item.Service),
		Item:    &item,
	}
}
