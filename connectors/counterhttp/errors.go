package counterhttp

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}

type InvalidHeaderNameError struct {
	Name string
}

func (e *InvalidHeaderNameError) Error() string {
	return fmt.Sprintf("invalid header name: %q", e.Name)
}

func InvalidHeaderName(name string) error {
	return &InvalidHeaderNameError{Name: name}
}
