package counterhttp

import (
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/net/http/httpguts"
)

// NewCORS accepts any origin. Every allowed header must be a valid field name.
func NewCORS(allowedHeaders ...string) (*cors.Cors, error) {
	for _, header := range allowedHeaders {
		if !httpguts.ValidHeaderFieldName(header) {
			return nil, InvalidHeaderName(header)
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: allowedHeaders,
	}), nil
}
