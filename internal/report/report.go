package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/scoring"
)

// ReportData содержит данные для формирования отчёта по результатам пользователя
type ReportData struct {
	UserID      int64
	UserName    string
	Results     []model.Result
	GeneratedAt time.Time
}

// Generator формирует PDF-отчёты. Если в FontDir лежат шрифты DejaVu, используется UTF-8,
// иначе встроенный Helvetica с перекодировкой в cp1252.
type Generator struct {
	FontDir string
}

// NewGenerator создает генератор отчётов
func NewGenerator(fontDir string) *Generator {
	return &Generator{FontDir: fontDir}
}

// Filename возвращает имя файла отчёта для пользователя
func Filename(userID int64) string {
	return fmt.Sprintf("quiz_results_%d.pdf", userID)
}

// Generate формирует PDF-отчёт. Результаты выводятся в переданном порядке.
func (g *Generator) Generate(r ReportData) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	family, tr := g.setupFont(pdf)

	pdf.AddPage()

	pdf.SetFont(family, "B", 18)
	name := r.UserName
	if name == "" {
		name = fmt.Sprintf("user %d", r.UserID)
	}
	pdf.MultiCell(0, 10, tr("Quiz Results for "+name), "", "C", false)
	pdf.Ln(2)

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFont(family, "", 11)
	pdf.MultiCell(0, 7, "Generated on "+generated.Format("2006-01-02 15:04"), "", "L", false)
	pdf.Ln(6)

	if len(r.Results) == 0 {
		pdf.MultiCell(0, 8, "No quiz results found.", "", "L", false)
	}

	for i, res := range r.Results {
		pdf.SetFont(family, "B", 14)
		pdf.MultiCell(0, 9, tr(fmt.Sprintf("%d. %s", i+1, res.QuizTitle)), "", "L", false)

		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 7, "Date: "+res.Timestamp.Format("2006-01-02 15:04"), "", "L", false)
		pdf.MultiCell(0, 7, fmt.Sprintf("Score: %.2f/%d (%.1f%%)", res.Score, res.MaxScore, res.Percentage()), "", "L", false)

		if len(res.Answers) > 0 {
			pdf.Ln(2)
			g.answersTable(pdf, family, tr, res)
		}
		pdf.Ln(8)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf, nil
}

func (g *Generator) answersTable(pdf *gofpdf.Fpdf, family string, tr func(string) string, res model.Result) {
	widths := []float64{80, 60, 22, 22}
	headers := []string{"Question", "Your Answer", "Correct?", "Points"}

	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	pdf.SetTextColor(0, 0, 0)
	for j, a := range res.Answers {
		if j%2 == 0 {
			pdf.SetFillColor(245, 245, 220)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		answer := "No answer"
		if a.Answered() {
			answer = a.SelectedText()
		}
		mark := "no"
		if a.IsCorrect {
			mark = "yes"
		}
		row := []string{
			tr(truncate(a.QuestionText, 45)),
			tr(truncate(answer, 30)),
			mark,
			fmt.Sprintf("%+.2f", scoring.AnswerPoints(a, res.NegativeMarkingFactor)),
		}
		for i, cell := range row {
			align := "L"
			if i >= 2 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (g *Generator) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if g.FontDir != "" {
		regular := filepath.Join(g.FontDir, "DejaVuSans.ttf")
		bold := filepath.Join(g.FontDir, "DejaVuSans-Bold.ttf")
		if fileExists(regular) && fileExists(bold) {
			pdf.AddUTF8Font("DejaVu", "", regular)
			pdf.AddUTF8Font("DejaVu", "B", bold)
			return "DejaVu", func(s string) string { return s }
		}
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
