package presenter

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/timer"
)

// Messenger - часть API бота, нужная для отрисовки попыток. *tele.Bot реализует этот интерфейс.
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// live - показанный вопрос, для которого идет обратный отсчет
type live struct {
	mu     sync.Mutex
	done   bool
	msg    *tele.Message
	view   session.QuestionView
	markup *tele.ReplyMarkup
	cancel context.CancelFunc
}

// stop прекращает обновления отсчета. После возврата отсчет сообщение не редактирует.
func (l *live) stop() {
	l.cancel()
	l.mu.Lock()
	l.done = true
	l.mu.Unlock()
}

// Presenter отрисовывает попытки в Telegram: вопрос с кнопками, обратный отсчет, отзыв и итог
type Presenter struct {
	bot       Messenger
	countdown *timer.Countdown
	logger    *log.Logger
	debug     bool

	mu    sync.Mutex
	lives map[int64]*live
}

// New создает Presenter. countdown может быть nil, тогда отсчет не обновляется.
func New(bot Messenger, countdown *timer.Countdown, logger *log.Logger, debug bool) *Presenter {
	if logger == nil {
		logger = log.Default()
	}
	return &Presenter{
		bot:       bot,
		countdown: countdown,
		logger:    logger,
		debug:     debug,
		lives:     make(map[int64]*live),
	}
}

// ShowQuestion отправляет вопрос с inline-кнопками и запускает обратный отсчет
func (p *Presenter) ShowQuestion(_ context.Context, v session.QuestionView) error {
	p.stopLive(v.UserID)

	markup := answerMarkup(v)
	msg, err := p.bot.Send(&tele.User{ID: v.UserID}, QuestionText(v, v.TimeLimit), markup)
	if err != nil {
		return fmt.Errorf("failed to send question: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &live{msg: msg, view: v, markup: markup, cancel: cancel}

	p.mu.Lock()
	p.lives[v.UserID] = l
	p.mu.Unlock()

	if p.countdown != nil {
		go p.runCountdown(ctx, l)
	}
	return nil
}

// ShowRetired заменяет сообщение с вопросом на отзыв об ответе
func (p *Presenter) ShowRetired(_ context.Context, v session.RetiredView) error {
	l := p.stopLive(v.UserID)
	text := RetiredText(v)
	if l != nil && l.view.Generation == v.Generation {
		if _, err := p.bot.Edit(l.msg, text); err != nil && !isNotModified(err) {
			return fmt.Errorf("failed to show feedback: %w", err)
		}
		return nil
	}
	if _, err := p.bot.Send(&tele.User{ID: v.UserID}, text); err != nil {
		return fmt.Errorf("failed to send feedback: %w", err)
	}
	return nil
}

// ShowResult отправляет итог попытки с кнопкой выгрузки PDF
func (p *Presenter) ShowResult(_ context.Context, r model.Result) error {
	p.stopLive(r.UserID)

	markup := &tele.ReplyMarkup{}
	btn := markup.Data("📄 Get PDF Results", model.ResultsPDFKey, r.QuizID)
	markup.Inline(markup.Row(btn))

	if _, err := p.bot.Send(&tele.User{ID: r.UserID}, ResultText(r), markup); err != nil {
		return fmt.Errorf("failed to send result: %w", err)
	}
	return nil
}

// ShowCancelled сообщает об отмене попытки
func (p *Presenter) ShowCancelled(_ context.Context, userID int64, _ string) error {
	l := p.stopLive(userID)
	const text = "🚫 Quiz cancelled. No result was saved."
	if l != nil {
		if _, err := p.bot.Edit(l.msg, text); err == nil || isNotModified(err) {
			return nil
		}
	}
	if _, err := p.bot.Send(&tele.User{ID: userID}, text); err != nil {
		return fmt.Errorf("failed to send cancel notice: %w", err)
	}
	return nil
}

// Stop прекращает все отсчеты
func (p *Presenter) Stop() {
	p.mu.Lock()
	lives := p.lives
	p.lives = make(map[int64]*live)
	p.mu.Unlock()
	for _, l := range lives {
		l.stop()
	}
}

func (p *Presenter) stopLive(userID int64) *live {
	p.mu.Lock()
	l, ok := p.lives[userID]
	delete(p.lives, userID)
	p.mu.Unlock()
	if !ok {
		return nil
	}
	l.stop()
	return l
}

func (p *Presenter) runCountdown(ctx context.Context, l *live) {
	err := p.countdown.Run(ctx, l.view.Deadline, func(remaining time.Duration) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.done {
			return context.Canceled
		}
		_, err := p.bot.Edit(l.msg, QuestionText(l.view, remaining), l.markup)
		if err != nil && !isNotModified(err) {
			p.logger.Printf("countdown: failed to edit message for user %d: %v", l.view.UserID, err)
		}
		return nil
	})
	if p.debug && err != nil && err != context.Canceled {
		p.logger.Printf("DEBUG: countdown for user %d stopped: %v", l.view.UserID, err)
	}
}

func answerMarkup(v session.QuestionView) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(v.Options))
	for i, opt := range v.Options {
		data := EncodeAnswer(AnswerData{Question: v.Index, Generation: v.Generation, Option: i})
		btn := markup.Data(fmt.Sprintf("%s. %s", model.OptionLetter(i), opt), model.AnswerKey, data)
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)
	return markup
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
