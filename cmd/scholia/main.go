package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/scholia/internal/api"
	"github.com/alexanderramin/scholia/internal/cli"
	"github.com/alexanderramin/scholia/internal/config"
	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/alexanderramin/scholia/internal/logger"
	"github.com/alexanderramin/scholia/internal/metrics"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(configPath(args, os.Getenv("SCHOLIA_CONFIG")))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New()

	// Wire repositories
	ticketRepo := repository.NewSQLiteTicketRepo(database)
	timeEntryRepo := repository.NewSQLiteTimeEntryRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	llmObservers := llm.MultiObserver{m}
	if cfg.LLM.LogCalls {
		llmObservers = append(llmObservers, llm.NewLogObserver(log))
	}
	p := planner.New(llm.NewOllamaClient(cfg.LLMSettings(), llmObservers))

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(log), m}
	svc := api.Services{
		Tickets: service.NewTicketService(ticketRepo, uow, observers...),
		Focus:   service.NewFocusService(ticketRepo),
		Timers:  service.NewTimerService(timeEntryRepo, ticketRepo, uow, observers...),
		Auth: service.NewAuthService(userRepo, service.AuthConfig{
			Secret:   cfg.Auth.JWTSecret,
			TokenTTL: cfg.Auth.TokenTTL,
		}, observers...),
		Plans: service.NewPlanService(ticketRepo, p, uow, observers...),
		Todos: service.NewTodoService(todoRepo, p, uow, observers...),
	}

	app := &cli.App{
		Tickets:     svc.Tickets,
		Focus:       svc.Focus,
		Timers:      svc.Timers,
		Auth:        svc.Auth,
		Plans:       svc.Plans,
		Todos:       svc.Todos,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Serve: func(ctx context.Context) error {
			return serve(ctx, cfg, svc, log, m)
		},
	}

	root := cli.NewRootCmd(app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// configPath picks --config out of args without failing on the flags that
// belong to subcommands.
func configPath(args []string, fallback string) string {
	fs := pflag.NewFlagSet("scholia", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	if err := fs.Parse(args); err != nil || *path == "" {
		return fallback
	}
	return *path
}

// newLogger colors levels only when w is a terminal.
func newLogger(cfg config.LogConfig, w *os.File) (*zap.Logger, error) {
	if isatty.IsTerminal(w.Fd()) {
		return logger.New(cfg.Level, cfg.Format)
	}
	return logger.Plain(cfg.Level, cfg.Format)
}
