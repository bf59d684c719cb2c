package handler

import "net/http"

// Routes builds the API mux wrapped in the middleware chain:
// RequestLogger → SecurityHeaders → CORS → mux.
func Routes(h *Handler, contact *ContactHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contact.Submit)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}
