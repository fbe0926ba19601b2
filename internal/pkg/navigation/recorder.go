// Package navigation carries navigation requests from the core services back
// to the transport layer of the request that triggered them.
package navigation

import (
	"context"
	"sync"
)

type recorderKey struct{}

// Recorder keeps the last route requested while handling one request.
type Recorder struct {
	mu    sync.Mutex
	route string
}

// Route returns the last requested route, or "" when none was requested.
func (r *Recorder) Route() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

func (r *Recorder) set(route string) {
	r.mu.Lock()
	r.route = route
	r.mu.Unlock()
}

// WithRecorder returns a context carrying a fresh Recorder.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

// FromContext returns the Recorder stored in ctx, if any.
func FromContext(ctx context.Context) (*Recorder, bool) {
	rec, ok := ctx.Value(recorderKey{}).(*Recorder)
	return rec, ok
}

// ContextNavigator records navigation requests on the Recorder found in the
// context. Requests made outside a recorded context are dropped.
type ContextNavigator struct{}

// Navigate satisfies ports.Navigator.
func (ContextNavigator) Navigate(ctx context.Context, route string) {
	if rec, ok := FromContext(ctx); ok {
		rec.set(route)
	}
}
