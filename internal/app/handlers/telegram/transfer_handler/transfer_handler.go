package transfer_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	quizService "github.com/IT-Nick/quizbot/internal/domain/quizzes/service"
)

// maxImportSize - предельный размер загружаемого JSON
const maxImportSize = 1 << 20

const importHelp = "Please upload a JSON file with your quiz data.\n\n" +
	"The file should have the following format:\n" +
	"{\n" +
	"  \"title\": \"Quiz Title\",\n" +
	"  \"description\": \"Quiz Description\",\n" +
	"  \"time_limit\": 60,\n" +
	"  \"negative_marking_factor\": 0.25,\n" +
	"  \"questions\": [\n" +
	"    {\n" +
	"      \"text\": \"Question text\",\n" +
	"      \"options\": [\"Option A\", \"Option B\", \"Option C\", \"Option D\"],\n" +
	"      \"correct_option\": 0\n" +
	"    }\n" +
	"  ]\n" +
	"}"

// QuizTransfer - экспорт и импорт викторин
type QuizTransfer interface {
	ExportQuiz(ctx context.Context, id string) ([]byte, error)
	ImportQuiz(ctx context.Context, data []byte, creatorID int64) (model.Quiz, error)
}

// FileDownloader скачивает файл, загруженный в Telegram. Реализуется *tele.Bot.
type FileDownloader interface {
	File(file *tele.File) (io.ReadCloser, error)
}

// ExportHandler обрабатывает /export <quiz_id>: викторина отправляется JSON-файлом
type ExportHandler struct {
	quizzes QuizTransfer
}

func NewExportHandler(quizzes QuizTransfer) *ExportHandler {
	return &ExportHandler{quizzes: quizzes}
}

func (h *ExportHandler) Handle(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("Please provide a quiz ID: /export (quiz_id)")
	}

	data, err := h.quizzes.ExportQuiz(context.Background(), args[0])
	if errors.Is(err, model.ErrQuizNotFound) {
		return c.Send(fmt.Sprintf("Quiz with ID %s not found. Use /list to see available quizzes.", args[0]))
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to export quiz: %v", err))
	}

	return c.Send(&tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: fmt.Sprintf("quiz_%s.json", args[0]),
		Caption:  "Quiz exported. Upload this file after /import to restore it.",
	})
}

func (h *ExportHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// ImportHandler обрабатывает /import и загрузку JSON-документа администратором
type ImportHandler struct {
	quizzes QuizTransfer
	files   FileDownloader
}

func NewImportHandler(quizzes QuizTransfer, files FileDownloader) *ImportHandler {
	return &ImportHandler{quizzes: quizzes, files: files}
}

// Handle на команду /import отвечает описанием формата, на документ - импортирует его
func (h *ImportHandler) Handle(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Document == nil {
		return c.Send(importHelp)
	}

	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".json") {
		return c.Send("Please upload a JSON file.")
	}

	rc, err := h.files.File(&doc.File)
	if err != nil {
		return c.Send(fmt.Sprintf("Error importing quiz: %v", err))
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImportSize))
	if err != nil {
		return c.Send(fmt.Sprintf("Error importing quiz: %v", err))
	}

	quiz, err := h.quizzes.ImportQuiz(context.Background(), data, c.Sender().ID)
	if errors.Is(err, quizService.ErrInvalidImport) {
		return c.Send(fmt.Sprintf("Failed to import quiz. Invalid format: %v", err))
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Error importing quiz: %v", err))
	}

	return c.Send(fmt.Sprintf("Quiz imported successfully!\n\n"+
		"Title: %s\n"+
		"Description: %s\n"+
		"Questions: %d\n"+
		"ID: %s\n\n"+
		"Use /list to see all quizzes.", quiz.Title, quiz.Description, len(quiz.Questions), quiz.ID))
}

func (h *ImportHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
