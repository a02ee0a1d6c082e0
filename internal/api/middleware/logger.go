package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Logger emits one line per request: method, path, status, duration. Method
// and path are client-controlled, so CR and LF are stripped to keep each
// request on a single log line.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		clean := strings.NewReplacer("\r", "", "\n", "").Replace
		log.Printf("%s %s %d %s", clean(r.Method), clean(r.URL.Path), sw.status, time.Since(start))
	})
}

// statusWriter records the status code the downstream handler wrote.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
