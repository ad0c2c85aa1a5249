package start_handler

import (
	"fmt"

	tele "gopkg.in/telebot.v4"
)

const welcomeMessage = "🎓 Welcome to Telegram Quiz Bot! 🎓\n\n" +
	"Hello %s! I'm your interactive quiz companion.\n\n" +
	"🚀 Key Features:\n" +
	"• 📋 Multiple choice quizzes\n" +
	"• ⏱️ Custom time limits per question\n" +
	"• 📊 Negative marking for wrong answers\n" +
	"• 📑 PDF generation of results\n" +
	"• 📤 Import/Export quizzes\n\n" +
	"📝 Commands:\n" +
	"• /start - Show this welcome message\n" +
	"• /help - Get help information\n" +
	"• /list - List available quizzes\n" +
	"• /take [quiz_id] - Start a quiz\n" +
	"• /cancel - Cancel operation\n" +
	"• /results - Get quiz results as PDF\n\n" +
	"Use /list to see available quizzes!"

// StartHandler структура для обработки команды /start
type StartHandler struct {
	isAdmin func(userID int64) bool
}

// NewStartHandler возвращает структуру обработчика. isAdmin может быть nil.
func NewStartHandler(isAdmin func(userID int64) bool) *StartHandler {
	return &StartHandler{isAdmin: isAdmin}
}

// Handle отправляет приветствие. Администратору дополнительно напоминает о /admin.
func (h *StartHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	msg := fmt.Sprintf(welcomeMessage, user.FirstName)
	if h.isAdmin != nil && h.isAdmin(user.ID) {
		msg += "\n\nYou are an admin. Use /admin to see admin commands."
	}
	return c.Send(msg)
}

// GetHandlerFunc возвращает обработчик в формате tele.HandlerFunc
func (h *StartHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
