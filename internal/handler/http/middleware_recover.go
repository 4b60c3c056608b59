package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/clearnext/internal/logger"
)

// withRecover turns a panic in a handler into a 500 envelope. http.ErrAbortHandler
// is re-panicked so the server can abort the connection.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromRequest(r).Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			writeFailure(w, r, http.StatusInternalServerError, fmt.Sprintf("Error handling request: %v", rec), nil)
		}()

		next.ServeHTTP(w, r)
	})
}
