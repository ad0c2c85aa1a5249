package health_handler

import (
	"net/http"

	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler отвечает на проверку живости сервиса
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpError.JSONResponse(w, HealthResponse{Status: "ok"})
}
