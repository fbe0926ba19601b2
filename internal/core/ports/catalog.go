package ports

import (
	"context"

	"github.com/telemedicina/booking-api/internal/core/domain"
)

// RemoteUser is a user record as served by the mock REST backend, which still
// carries plaintext passwords.
type RemoteUser struct {
	ID        int         `json:"id"`
	Name      string      `json:"nombre"`
	Handle    string      `json:"usuario"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"tipo"`
	BirthDate string      `json:"fechaNacimiento"`
}

// CatalogClient reads the collections of the mock REST backend. It is
// read-only: nothing is ever written back.
type CatalogClient interface {
	FetchUsers(ctx context.Context) ([]RemoteUser, error)
	FetchCart(ctx context.Context) ([]domain.CartItem, error)
	FetchSpecialties(ctx context.Context, id string) ([]domain.Specialty, error)
}

// CatalogService lists doctors per specialty.
type CatalogService interface {
	DoctorsBySpecialty(ctx context.Context, specialtyID string) []domain.Doctor
}
