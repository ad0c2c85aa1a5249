package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/app/handlers/http/active_sessions_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/user_results_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/admin_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/cancel_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/create_quiz_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/edit_quiz_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/help_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/list_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/marathon_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/results_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/stop_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/take_quiz_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/transfer_handler"
	"github.com/IT-Nick/quizbot/internal/domain/authoring"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	quizService "github.com/IT-Nick/quizbot/internal/domain/quizzes/service"
	resultService "github.com/IT-Nick/quizbot/internal/domain/results/service"
	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/presenter"
	redisInfra "github.com/IT-Nick/quizbot/internal/infra/redis"
	"github.com/IT-Nick/quizbot/internal/infra/timer"
	"github.com/IT-Nick/quizbot/internal/middleware"
	"github.com/IT-Nick/quizbot/internal/poller"
	"github.com/IT-Nick/quizbot/internal/report"
)

type Services struct {
	quizService   *quizService.QuizService
	resultService *resultService.ResultService
	engine        *session.Engine
	drafts        *authoring.Manager
	reports       *report.Generator
	marker        *redisInfra.SessionMarker
}

type App struct {
	config *config.Config
	logger *log.Logger
	bot    *tele.Bot
	server *http.Server

	storage   *storage
	scheduler *timer.Scheduler[session.Tag]
	presenter *presenter.Presenter

	Services
}

// NewApp подключает хранилища, создает бота и сервисы
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := log.New(os.Stdout, "[quizbot] ", log.LstdFlags)

	st, err := initStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	p, err := poller.NewPoller(cfg.TelegramBot)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("poller.NewPoller: %w", err)
	}
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c tele.Context) {
			logger.Printf("telegram handler error: %v", err)
		},
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("tele.NewBot: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    logger,
		bot:       bot,
		storage:   st,
		scheduler: timer.NewScheduler[session.Tag](),
		presenter: presenter.New(bot, timer.NewCountdown(nil), logger, cfg.Debug),
	}
	app.initServices()

	return app, nil
}

// initServices создает сервисы и движок попыток
func (app *App) initServices() {
	app.quizService = quizService.NewQuizService(app.storage.quizzes, app.config.Quiz.DefaultTimeLimit, app.config.Quiz.DefaultNegativeMarking)
	app.resultService = resultService.NewResultService(app.storage.results)
	app.drafts = authoring.NewManager()
	app.reports = report.NewGenerator(app.config.Report.FontDir)

	opts := session.Options{
		AdvanceDelay: app.config.Quiz.AdvanceDelay,
		Logger:       app.logger,
		Debug:        app.config.Debug,
	}
	if app.storage.redis != nil {
		app.marker = redisInfra.NewSessionMarker(app.storage.redis, app.config.Storage.Redis.SessionTTL)
		opts.Marker = app.marker
	}

	app.engine = session.NewEngine(app.quizService, app.resultService, app.scheduler, app.presenter, opts)
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	if app.config.Debug {
		app.bot.Use(middleware.Logger(app.logger))
		app.bot.Use(middleware.DebugUserActions(true, app.logger, app.describeUser))
	}
	app.bot.Use(middleware.Recover(func(err error, c tele.Context) {
		app.logger.Printf("Recovered from panic: %v", err)
	}))

	app.bot.Handle("/start", start_handler.NewStartHandler(app.config.IsAdmin).GetHandlerFunc())
	app.bot.Handle("/help", help_handler.NewHelpHandler().GetHandlerFunc())
	app.bot.Handle("/list", list_handler.NewListHandler(app.quizService).GetHandlerFunc())

	take := take_quiz_handler.NewTakeQuizHandler(app.quizService, app.engine).GetHandlerFunc()
	app.bot.Handle("/take", take)
	app.bot.Handle(&tele.Btn{Unique: model.TakeQuizKey}, take)
	app.bot.Handle(&tele.Btn{Unique: model.AnswerKey}, answer_handler.NewAnswerHandler(app.engine, app.logger).GetHandlerFunc())

	app.bot.Handle("/cancel", cancel_handler.NewCancelHandler(app.engine, app.drafts).GetHandlerFunc())
	app.bot.Handle("/stop", stop_handler.NewStopHandler(app.engine).GetHandlerFunc())

	results := results_handler.NewResultsHandler(app.resultService, app.reports).GetHandlerFunc()
	app.bot.Handle("/results", results)
	app.bot.Handle(&tele.Btn{Unique: model.ResultsPDFKey}, results)

	// Шаги создания викторины приходят обычным текстом. Черновики бывают только у администраторов.
	app.bot.Handle(tele.OnText, create_quiz_handler.NewTextHandler(app.drafts, app.quizService, app.config.Quiz.DefaultNegativeMarking).GetHandlerFunc())

	admin := app.bot.Group()
	admin.Use(middleware.AdminOnly(app.config.Admins))

	admin.Handle("/admin", admin_handler.NewAdminHandler().GetHandlerFunc())
	admin.Handle("/adminhelp", admin_handler.NewAdminHelpHandler().GetHandlerFunc())
	admin.Handle("/create", create_quiz_handler.NewCreateHandler(app.drafts).GetHandlerFunc())
	admin.Handle("/done", create_quiz_handler.NewDoneHandler(app.drafts, app.config.Quiz.DefaultTimeLimit).GetHandlerFunc())

	admin.Handle("/edittime", edit_quiz_handler.NewEditTimeHandler(app.quizService).GetHandlerFunc())
	admin.Handle("/editquestiontime", edit_quiz_handler.NewEditQuestionTimeHandler(app.quizService).GetHandlerFunc())
	admin.Handle("/deletequiz", edit_quiz_handler.NewDeleteQuizHandler(app.quizService).GetHandlerFunc())

	admin.Handle("/export", transfer_handler.NewExportHandler(app.quizService).GetHandlerFunc())
	importHandler := transfer_handler.NewImportHandler(app.quizService, app.bot).GetHandlerFunc()
	admin.Handle("/import", importHandler)
	admin.Handle(tele.OnDocument, importHandler)

	admin.Handle("/start_marathon", marathon_handler.NewStartHandler(app.drafts).GetHandlerFunc())
	admin.Handle("/finalize_marathon", marathon_handler.NewFinalizeHandler(app.drafts, app.quizService).GetHandlerFunc())
	admin.Handle("/cancel_marathon", marathon_handler.NewCancelHandler(app.drafts).GetHandlerFunc())
	admin.Handle("/edit_answer", marathon_handler.NewEditAnswerHandler(app.drafts).GetHandlerFunc())
	admin.Handle(tele.OnPoll, marathon_handler.NewPollHandler(app.drafts, app.quizService).GetHandlerFunc())
}

// describeUser описывает состояние пользователя для отладочного лога
func (app *App) describeUser(userID int64) string {
	var parts []string
	if snap, ok := app.engine.Snapshot(userID); ok {
		parts = append(parts, fmt.Sprintf("quiz %s question %d/%d %s", snap.QuizID, snap.Current+1, snap.Total, snap.State))
	}
	if st, ok := app.drafts.State(userID); ok {
		parts = append(parts, fmt.Sprintf("draft %T", st))
	}
	if app.marker != nil {
		id, ok, err := app.marker.Active(context.Background(), userID)
		switch {
		case err != nil:
			parts = append(parts, fmt.Sprintf("redis mark error: %v", err))
		case ok:
			parts = append(parts, "redis mark "+id)
		}
	}
	if len(parts) == 0 {
		return "idle"
	}
	return strings.Join(parts, ", ")
}

// bootstrapHandlersHTTP - регистрирует HTTP-обработчики
func (app *App) bootstrapHandlersHTTP() http.Handler {
	mx := http.NewServeMux()

	mx.Handle("GET /healthz", health_handler.NewHealthHandler())
	mx.Handle("GET /users/{id}/results", user_results_handler.NewUserResultsHandler(app.resultService))

	var marker active_sessions_handler.MarkerCounter
	if app.marker != nil {
		marker = app.marker
	}
	mx.Handle("GET /sessions/active", active_sessions_handler.NewActiveSessionsHandler(app.engine, marker))

	return mx
}

// Run запускает бота и HTTP-сервер и блокируется до отмены ctx или ошибки одного из них
func (app *App) Run(ctx context.Context) error {
	app.bootstrapHandlersTelegram()

	app.server = &http.Server{
		Addr:              app.config.HTTPAddr(),
		Handler:           app.bootstrapHandlersHTTP(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Printf("Запуск бота в режиме %s...", app.config.TelegramBot.Mode)
		app.bot.Start()
		return nil
	})

	g.Go(func() error {
		app.logger.Printf("HTTP server listening on %s", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Println("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := app.server.Shutdown(shutdownCtx)

		app.bot.Stop()
		app.scheduler.Stop()
		app.presenter.Stop()
		return err
	})

	err := g.Wait()
	app.storage.Close()
	return err
}
