package requestid

import (
	"net/http"
	"time"

	"edumatch/pkg/requestcontext"

	"github.com/google/uuid"
)

// Middleware stamps each request with a correlation id and the request time.
// Downstream services read both through pkg/requestcontext, which keeps
// timestamps consistent across a single request and lets tests pin the clock.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
