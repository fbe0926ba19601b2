package service

import (
	"time"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

type nopRecorder struct{}

func (nopRecorder) Record(domain.ActivityEvent) {}

// NopRecorder discards activity events.
func NopRecorder() ports.ActivityRecorder { return nopRecorder{} }

func record(rec ports.ActivityRecorder, email, action, detail string) {
	if rec == nil {
		return
	}
	rec.Record(domain.ActivityEvent{
		Email:  email,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}
