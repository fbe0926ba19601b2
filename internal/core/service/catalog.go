package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

type catalogService struct {
	client ports.CatalogClient
	log    zerolog.Logger
}

// NewCatalogService returns a CatalogService that never fails: lookup errors
// are logged and answered with an empty list.
func NewCatalogService(client ports.CatalogClient, log zerolog.Logger) ports.CatalogService {
	return &catalogService{client: client, log: log}
}

func (s *catalogService) DoctorsBySpecialty(ctx context.Context, specialtyID string) []domain.Doctor {
	if s.client == nil {
		return []domain.Doctor{}
	}
	specialties, err := s.client.FetchSpecialties(ctx, specialtyID)
	if err != nil {
		s.log.Warn().Err(err).Str("specialty", specialtyID).Msg("specialty lookup failed")
		return []domain.Doctor{}
	}
	if len(specialties) == 0 || specialties[0].Doctors == nil {
		return []domain.Doctor{}
	}
	return specialties[0].Doctors
}
