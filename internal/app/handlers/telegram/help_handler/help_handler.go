package help_handler

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

var commands = []string{
	"/start - Start the bot",
	"/help - Show this help message",
	"/list - List all available quizzes",
	"/take (quiz_id) - Take a specific quiz",
	"/cancel - Cancel the current quiz",
	"/stop - Finish the current quiz early and get your score",
	"/results - Get your quiz results",
	"/admin - Show admin commands (admin only)",
}

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

// Handle отправляет список команд
func (h *HelpHandler) Handle(c tele.Context) error {
	return c.Send("Here are the available commands:\n\n" + strings.Join(commands, "\n"))
}

func (h *HelpHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
