package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
)

// PanicHandler turns a panic in a handler into a 500 response.
func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Ctx(r.Context()).Error().Bytes("stack", debug.Stack()).Msgf("Panic occurred: %v", err)
				httpx.ErrApplicationError("Unable to process request. Please try again later.").Send(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
