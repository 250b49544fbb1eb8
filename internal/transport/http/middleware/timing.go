package middleware

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	devDelayMin  = 100 * time.Millisecond
	devDelaySpan = 400 // additional ms, exclusive upper bound
)

// Timing reports elapsed time for every request and, in the dev
// environment only, injects a bounded random delay (100-499 ms) so the
// frontend's loading states stay honest against a local backend. It
// always forwards to the next stage and never touches the downstream
// result.
func Timing(env string, lg zerolog.Logger) func(http.Handler) http.Handler {
	dev := env == "dev"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if dev {
				time.Sleep(devDelayMin + time.Duration(rand.IntN(devDelaySpan))*time.Millisecond)
			}

			next.ServeHTTP(w, r)

			lg.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request timed")
		})
	}
}
