package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// OK writes a 200 response with the given body.
func OK(w http.ResponseWriter, body any) {
	JSON(w, http.StatusOK, body)
}

// Created writes a 201 response with the given body.
func Created(w http.ResponseWriter, body any) {
	JSON(w, http.StatusCreated, body)
}

// NoContent writes a 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
