package handler

import (
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// messageResponse acknowledges an operation that returns no resource.
type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name            string `json:"nombre"          validate:"required"`
	Handle          string `json:"usuario"         validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	BirthDate       string `json:"fechaNacimiento" validate:"required,adult"`
	Password        string `json:"password"        validate:"required,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type recoverRequest struct {
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type emailQuery struct {
	Email string `query:"email" validate:"required,email"`
}

type sessionResponse struct {
	Session  *domain.Session `json:"sesion"`
	Redirect string          `json:"redirect,omitempty"`
}

type userResponse struct {
	User     *domain.User `json:"usuario"`
	Redirect string       `json:"redirect,omitempty"`
}

type emailAvailabilityResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"disponible"`
}

// --- Cart ---

type bookRequest struct {
	Service string `json:"servicio" validate:"required"`
}

type removeItemQuery struct {
	ID      int    `query:"id"`
	Service string `query:"servicio"`
}

type bookResponse struct {
	Outcome  domain.AddItemOutcome `json:"resultado"`
	Message  string                `json:"mensaje"`
	Item     *domain.CartItem      `json:"item,omitempty"`
	Redirect string                `json:"redirect,omitempty"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

// --- Profile ---

type profileRequest struct {
	Name      string `json:"nombre"          validate:"required"`
	Handle    string `json:"usuario"`
	BirthDate string `json:"fechaNacimiento" validate:"omitempty,adult"`
}

// --- Admin ---

type createUserRequest struct {
	Name      string      `json:"nombre"          validate:"required"`
	Handle    string      `json:"usuario"`
	Email     string      `json:"email"           validate:"required,email"`
	Password  string      `json:"password"        validate:"required,strongpwd"`
	Role      domain.Role `json:"tipo"            validate:"omitempty,oneof=admin usuario"`
	BirthDate string      `json:"fechaNacimiento" validate:"omitempty,adult"`
}

type updateUserRequest struct {
	Name      string      `json:"nombre"`
	Handle    string      `json:"usuario"`
	Password  string      `json:"password"        validate:"omitempty,strongpwd"`
	Role      domain.Role `json:"tipo"            validate:"omitempty,oneof=admin usuario"`
	BirthDate string      `json:"fechaNacimiento" validate:"omitempty,adult"`
}

type usersResponse struct {
	Users []domain.User `json:"usuarios"`
}

// --- Catalogue & notices ---

type doctorsResponse struct {
	Specialty string          `json:"especialidad"`
	Doctors   []domain.Doctor `json:"doctores"`
}

type noticeResponse struct {
	Notice *flash.Message `json:"aviso"`
}
