package ports

import "context"

// Navigator receives navigation requests (e.g. "go to /auth/login") issued by
// services and guards.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}
