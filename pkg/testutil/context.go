package testutil

import (
	"net/http"
	"time"

	"edumatch/pkg/requestcontext"
)

// WithActor stamps an operator subject on the request context, simulating the
// operator middleware for handler tests that bypass the router.
func WithActor(req *http.Request, actorID string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request time for deterministic assertions.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), at)
	return req.WithContext(ctx)
}
