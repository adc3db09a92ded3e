package http

import (
	"net/http"
	"strings"
)

const corsAllowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// CORS allows every origin. Preflight requests are answered with 204 and
// echo the requested headers.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")

		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
		if requested := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers")); requested != "" {
			header.Set("Access-Control-Allow-Headers", requested)
			header.Add("Vary", "Access-Control-Request-Headers")
		}
		header.Set("Content-Length", "0")
		w.WriteHeader(http.StatusNoContent)
	})
}
