package admin_handler

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

var adminCommands = []string{
	"/create - Create a new quiz",
	"/adminhelp - Show detailed admin help",
	"/edittime (quiz_id) (seconds) - Edit quiz time limit",
	"/editquestiontime (quiz_id) (question_index) (time_limit) - Edit time limit for a specific question",
	"/deletequiz (quiz_id) - Delete a quiz",
	"/export (quiz_id) - Export a quiz as JSON",
	"/import - Import a quiz from JSON",
	"/start_marathon [Title | Description] - Collect forwarded polls into one quiz",
	"/edit_answer (question_number) (option) - Fix the correct option of a marathon question",
	"/finalize_marathon - Save the marathon quiz",
	"/cancel_marathon - Discard the marathon quiz",
}

const adminHelp = "Admin Help\n\n" +
	"Creating a Quiz:\n" +
	"1. Use /create to start creating a quiz\n" +
	"2. Send the quiz title and description in the format: 'Title | Description'\n" +
	"3. Add questions in the format: 'Question text | Option A | Option B | Option C | Option D | CorrectOption(0-3)'\n" +
	"   Note: The correct option is 0-indexed (0 for A, 1 for B, etc.)\n" +
	"4. Use /done when you've added all questions\n" +
	"5. Set the time limit per question in seconds\n" +
	"6. Set the negative marking factor (e.g., 0.25 means -0.25 points for wrong answers)\n\n" +
	"Editing Quiz Times:\n" +
	"- Use /edittime (quiz_id) (seconds) to change the overall time limit for all questions\n" +
	"- Use /editquestiontime (quiz_id) (question_index) (time_limit) to set a specific time for one question\n" +
	"  Example: /editquestiontime quiz123 2 30\n" +
	"  This sets question #3 (index 2) in quiz 'quiz123' to have a 30-second time limit\n\n" +
	"Polls:\n" +
	"- Forward a poll to create a one-question quiz\n" +
	"- Use /start_marathon, forward several polls, then /finalize_marathon\n\n" +
	"Importing Quizzes:\n" +
	"- Use /import and then upload a JSON file with quiz data\n" +
	"- The JSON format should match the exported quiz format\n\n" +
	"Note: Question indices start at 0, so the first question has index 0, second has index 1, etc."

// AdminHandler обрабатывает /admin. Доступ проверяет middleware.AdminOnly.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func (h *AdminHandler) Handle(c tele.Context) error {
	return c.Send("Admin Commands:\n\n" + strings.Join(adminCommands, "\n"))
}

func (h *AdminHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// AdminHelpHandler обрабатывает /adminhelp
type AdminHelpHandler struct{}

func NewAdminHelpHandler() *AdminHelpHandler {
	return &AdminHelpHandler{}
}

func (h *AdminHelpHandler) Handle(c tele.Context) error {
	return c.Send(adminHelp)
}

func (h *AdminHelpHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
