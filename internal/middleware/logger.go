package middleware

import (
	"encoding/json"
	"log"

	tele "gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое логирует входящие обновления Telegram в формате JSON.
// Если логгер не передан, используется log.Default().
func Logger(logger ...*log.Logger) tele.MiddlewareFunc {
	l := log.Default()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			l.Println(string(data))
			return next(c)
		}
	}
}
