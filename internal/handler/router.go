package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(outlookHandler *OutlookHandler, pageHandler *PageHandler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			Status  string `json:"status"`
			Service string `json:"service"`
		}{Status: "ok", Service: "macro-outlook"})
	}).Methods(http.MethodGet)

	// Browser flow
	router.HandleFunc("/", pageHandler.Index).Methods(http.MethodGet)
	router.HandleFunc("/outlook", pageHandler.Generate).Methods(http.MethodPost)

	// API routes stay on the root router so a method mismatch answers 405
	router.HandleFunc("/api/v1/outlook", outlookHandler.Generate).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/outlook/document", outlookHandler.GenerateDocument).Methods(http.MethodPost)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			RequestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
