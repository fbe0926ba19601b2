package handler

import (
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:      req.Name,
		Handle:    req.Handle,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
	}
}

func toProfileUpdate(req profileRequest) ports.ProfileUpdate {
	return ports.ProfileUpdate{
		Name:      req.Name,
		Handle:    req.Handle,
		BirthDate: req.BirthDate,
	}
}

func toNewUser(req createUserRequest) domain.User {
	return domain.User{
		Name:      req.Name,
		Handle:    req.Handle,
		Email:     req.Email,
		Role:      req.Role,
		BirthDate: req.BirthDate,
	}
}

func toUserEdit(email string, req updateUserRequest) domain.User {
	return domain.User{
		Email:     email,
		Name:      req.Name,
		Handle:    req.Handle,
		Role:      req.Role,
		BirthDate: req.BirthDate,
	}
}

func toCartItem(q removeItemQuery) domain.CartItem {
	return domain.CartItem{ID: q.ID, Service: q.Service}
}

// --- Service output → Response ---

func toBookResponse(res domain.AddItemResult, redirect string) bookResponse {
	return bookResponse{
		Outcome:  res.Outcome,
		Message:  res.Message,
		Item:     res.Item,
		Redirect: redirect,
	}
}
