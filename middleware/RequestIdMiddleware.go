package middleware

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

// RequestIdMiddleware tags every request with a correlation id, reusing the
// caller-provided one when present.
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)
		log.Debugf("request %s %s id=%s", r.Method, r.URL.Path, requestId)
		next.ServeHTTP(w, r)
	})
}
