package active_sessions_handler

import (
	"context"
	"fmt"
	"net/http"

	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// ActiveCounter - количество попыток, идущих в этом процессе
type ActiveCounter interface {
	ActiveCount() int
}

// MarkerCounter - количество попыток, отмеченных во внешнем хранилище
type MarkerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ActiveSessionsResponse struct {
	ActiveSessions int    `json:"active_sessions"`
	MarkedSessions *int64 `json:"marked_sessions,omitempty"`
}

// ActiveSessionsHandler отдает число активных попыток: GET /sessions/active
type ActiveSessionsHandler struct {
	engine ActiveCounter
	marker MarkerCounter
}

// NewActiveSessionsHandler создает обработчик. marker может быть nil.
func NewActiveSessionsHandler(engine ActiveCounter, marker MarkerCounter) *ActiveSessionsHandler {
	return &ActiveSessionsHandler{engine: engine, marker: marker}
}

func (h *ActiveSessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := ActiveSessionsResponse{ActiveSessions: h.engine.ActiveCount()}

	if h.marker != nil {
		n, err := h.marker.Count(r.Context())
		if err != nil {
			httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to count marked sessions: %v", err))
			return
		}
		response.MarkedSessions = &n
	}

	httpError.JSONResponse(w, response)
}
