package ports

import (
	"context"

	"github.com/telemedicina/booking-api/internal/core/domain"
)

// ActivityRecorder accepts activity events without blocking the caller.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivitySink persists activity events.
type ActivitySink interface {
	Insert(ctx context.Context, event domain.ActivityEvent) error
}
