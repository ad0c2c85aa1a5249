package results_handler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/report"
)

// ResultsGetter возвращает результаты пользователя, начиная с самых новых
type ResultsGetter interface {
	GetResults(ctx context.Context, userID int64) ([]model.Result, error)
	GetQuizResults(ctx context.Context, userID int64, quizID string) ([]model.Result, error)
}

// ReportGenerator формирует PDF-отчёт
type ReportGenerator interface {
	Generate(data report.ReportData) (*bytes.Buffer, error)
}

// ResultsHandler отправляет PDF с результатами: /results - все попытки,
// кнопка под итогом попытки - только по одной викторине
type ResultsHandler struct {
	results ResultsGetter
	reports ReportGenerator
	now     func() time.Time
}

func NewResultsHandler(results ResultsGetter, reports ReportGenerator) *ResultsHandler {
	return &ResultsHandler{results: results, reports: reports, now: time.Now}
}

func (h *ResultsHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	ctx := context.Background()
	var (
		results []model.Result
		err     error
	)
	if cb := c.Callback(); cb != nil {
		_ = c.Respond()
		results, err = h.results.GetQuizResults(ctx, user.ID, strings.TrimSpace(cb.Data))
	} else {
		results, err = h.results.GetResults(ctx, user.ID)
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to load results: %v", err))
	}
	if len(results) == 0 {
		return c.Send("You haven't taken any quizzes yet.")
	}

	name := user.Username
	if name == "" {
		name = user.FirstName
	}
	buf, err := h.reports.Generate(report.ReportData{
		UserID:      user.ID,
		UserName:    name,
		Results:     results,
		GeneratedAt: h.now(),
	})
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to generate PDF: %v", err))
	}

	return c.Send(&tele.Document{
		File:     tele.FromReader(buf),
		FileName: report.Filename(user.ID),
		Caption:  "Here are your quiz results.",
	})
}

func (h *ResultsHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
