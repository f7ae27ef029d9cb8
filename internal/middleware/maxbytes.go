package middleware

import "net/http"

// DefaultMaxBodyBytes is the default maximum request body size (1 MiB). Asset
// payloads are small; anything bigger is a mistake or abuse.
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes limits the request body size. A body exceeding maxBytes fails the
// JSON decode in the handler, which reports 400 to the client.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
