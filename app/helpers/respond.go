package helpers

import (
	"net/http"

	"github.com/unrolled/render"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func RespondError(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, ErrorResponse{Error: message})
}

func RespondFieldErrors(rnd *render.Render, w http.ResponseWriter, fields map[string]string) {
	_ = rnd.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
}
