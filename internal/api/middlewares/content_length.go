package middlewares

import (
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
)

// ContentLengthMiddleware rejects request bodies larger than the configured limit.
func ContentLengthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if r.ContentLength > cfg.Server.MaxContentLength {
					http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
					return
				}
				// bodies without a declared length are cut at the same limit
				r.Body = http.MaxBytesReader(w, r.Body, cfg.Server.MaxContentLength)
			}
			next.ServeHTTP(w, r)
		})
	}
}
