package http

import (
	"encoding/json"
	"net/http"
)

// Error - тело ответа с ошибкой
type Error struct {
	Error string `json:"error"`
}

// ErrorResponse отправляет JSON с описанием ошибки и заданным статусом
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Error{Error: message})
}

// JSONResponse отправляет v в формате JSON со статусом 200
func JSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
