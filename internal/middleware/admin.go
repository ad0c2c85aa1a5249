package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// AdminOnly пропускает к обработчику только пользователей из списка администраторов
func AdminOnly(admins []int64) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		allowed[id] = struct{}{}
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if _, ok := allowed[user.ID]; !ok {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Sorry, only admins can use this command."})
				}
				return c.Send("Sorry, only admins can use this command.")
			}
			return next(c)
		}
	}
}
