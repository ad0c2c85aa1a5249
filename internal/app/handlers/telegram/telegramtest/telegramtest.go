// Package telegramtest поднимает фиктивный Bot API для тестов обработчиков
package telegramtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tele "gopkg.in/telebot.v4"
)

// Call - один запрос к Bot API
type Call struct {
	Method   string
	Params   map[string]any
	FileName string
}

// Text возвращает параметр text запроса
func (c Call) Text() string {
	s, _ := c.Params["text"].(string)
	return s
}

// API записывает запросы бота
type API struct {
	mu    sync.Mutex
	calls []Call
}

// Calls возвращает копию записанных запросов
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

// Texts возвращает тексты всех отправленных и отредактированных сообщений
func (a *API) Texts() []string {
	var out []string
	for _, c := range a.Calls() {
		if c.Method == "sendMessage" || c.Method == "editMessageText" {
			out = append(out, c.Text())
		}
	}
	return out
}

// Last возвращает последний запрос
func (a *API) Last(t *testing.T) Call {
	t.Helper()
	calls := a.Calls()
	if len(calls) == 0 {
		t.Fatal("no bot api calls recorded")
	}
	return calls[len(calls)-1]
}

// Reset очищает журнал запросов
func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = nil
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(10 << 20); err == nil {
			call.Params = make(map[string]any)
			for k, v := range r.MultipartForm.Value {
				if len(v) > 0 {
					call.Params[k] = v[0]
				}
			}
			for _, files := range r.MultipartForm.File {
				if len(files) > 0 {
					call.FileName = files[0].Filename
				}
			}
			if name, ok := call.Params["file_name"].(string); ok && name != "" {
				call.FileName = name
			}
		}
	} else {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &call.Params)
	}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if call.Method == "answerCallbackQuery" {
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
}

// NewBot создает бота, направленного на фиктивный Bot API
func NewBot(t *testing.T) (*tele.Bot, *API) {
	t.Helper()
	api := &API{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := tele.NewBot(tele.Settings{URL: srv.URL, Token: "test", Offline: true})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return bot, api
}

// Message строит обновление с текстовым сообщением. payload - аргументы команды.
func Message(userID int64, text, payload string) tele.Update {
	return tele.Update{Message: &tele.Message{
		ID:      1,
		Sender:  &tele.User{ID: userID, FirstName: "Ann", Username: "ann"},
		Chat:    &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		Text:    text,
		Payload: payload,
	}}
}

// Callback строит обновление с нажатием inline-кнопки
func Callback(userID int64, unique, data string) tele.Update {
	user := &tele.User{ID: userID, FirstName: "Ann", Username: "ann"}
	return tele.Update{Callback: &tele.Callback{
		ID:     "cb",
		Sender: user,
		Unique: unique,
		Data:   data,
		Message: &tele.Message{
			ID:   7,
			Chat: &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		},
	}}
}
