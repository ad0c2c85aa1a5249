package user_results_handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// ResultsGetter возвращает результаты пользователя, начиная с самого свежего
type ResultsGetter interface {
	GetResults(ctx context.Context, userID int64) ([]model.Result, error)
}

// ResultSummary - результат попытки в ответе API
type ResultSummary struct {
	QuizID     string               `json:"quiz_id"`
	QuizTitle  string               `json:"quiz_title"`
	Score      float64              `json:"score"`
	MaxScore   int                  `json:"max_score"`
	Percentage float64              `json:"percentage"`
	Timestamp  time.Time            `json:"timestamp"`
	Answers    []model.AnswerRecord `json:"answers"`
}

type UserResultsResponse struct {
	UserID  int64           `json:"user_id"`
	Total   int             `json:"total"`
	Results []ResultSummary `json:"results"`
}

// UserResultsHandler отдает историю результатов пользователя: GET /users/{id}/results
type UserResultsHandler struct {
	results ResultsGetter
}

func NewUserResultsHandler(results ResultsGetter) *UserResultsHandler {
	return &UserResultsHandler{results: results}
}

func (h *UserResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	results, err := h.results.GetResults(r.Context(), userID)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get results: %v", err))
		return
	}

	response := UserResultsResponse{
		UserID:  userID,
		Total:   len(results),
		Results: make([]ResultSummary, 0, len(results)),
	}
	for _, res := range results {
		response.Results = append(response.Results, ResultSummary{
			QuizID:     res.QuizID,
			QuizTitle:  res.QuizTitle,
			Score:      res.Score,
			MaxScore:   res.MaxScore,
			Percentage: res.Percentage(),
			Timestamp:  res.Timestamp,
			Answers:    res.Answers,
		})
	}

	httpError.JSONResponse(w, response)
}
