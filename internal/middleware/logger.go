package middleware

import (
	"log"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per request with status, size and latency
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Printf("[%s] %s %s %d %dB %s",
				chimiddleware.GetReqID(r.Context()),
				r.Method,
				r.URL.RequestURI(),
				ww.Status(),
				ww.BytesWritten(),
				time.Since(start).Round(time.Microsecond),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
