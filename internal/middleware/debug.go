package middleware

import (
	"fmt"
	"log"

	tele "gopkg.in/telebot.v4"
)

// StateFunc описывает текущее состояние пользователя для отладочного вывода
type StateFunc func(userID int64) string

// DebugUserActions при включённом режиме отладки логирует каждое действие пользователя
// вместе с его состоянием (активная попытка, черновик викторины).
func DebugUserActions(enabled bool, logger *log.Logger, state StateFunc) tele.MiddlewareFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			if !enabled {
				return err
			}
			user := c.Sender()
			if user == nil {
				return err
			}
			var action string
			if cb := c.Callback(); cb != nil {
				action = "Callback: " + cb.Data
			} else if msg := c.Message(); msg != nil {
				action = "Message: " + msg.Text
			} else {
				action = "Unknown action"
			}
			stateStr := ""
			if state != nil {
				stateStr = state(user.ID)
			}
			logger.Printf("DEBUG: %s", fmt.Sprintf("User: %s (ID: %d), State: %s, Action: %s, Error: %v",
				user.FirstName, user.ID, stateStr, action, err))
			return err
		}
	}
}
