package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"landing_page_studio/config"
	"landing_page_studio/generator"
	"landing_page_studio/pages"
	"landing_page_studio/publisher"
	"landing_page_studio/server"
)

func main() {
	app := &cli.App{
		Name:  "landing-studio",
		Usage: "generate landing pages from a conversation with an AI assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/config.yaml",
				Usage:   "path to config file (.json or .yaml)",
				EnvVars: []string{"LANDING_STUDIO_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the web studio",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config server_addr)"},
				},
				Action: serveAction,
			},
			{
				Name:   "chat",
				Usage:  "talk to the assistant in the terminal",
				Action: chatAction,
			},
			{
				Name:  "pages",
				Usage: "manage saved landing pages",
				Subcommands: []*cli.Command{
					{Name: "list", Usage: "list saved pages, newest first", Action: pagesListAction},
					{Name: "show", Usage: "print one page as JSON", ArgsUsage: "<id>", Action: pagesShowAction},
					{Name: "delete", Usage: "delete one page", ArgsUsage: "<id>", Action: pagesDeleteAction},
				},
			},
			{
				Name:  "export",
				Usage: "write a saved page as HTML and/or a React component",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "page id", Required: true},
					&cli.StringFlag{Name: "format", Value: "all", Usage: "html, component or all"},
					&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory"},
				},
				Action: exportAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command needs: configuration, logger and page store.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  pages.Store
	close  func() error
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.NewLogger(os.Stderr, c.Bool("verbose"))
	slog.SetDefault(logger)

	store, closeFn, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, store: store, close: closeFn}, nil
}

func buildStore(cfg config.Config) (pages.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Driver {
	case "supabase":
		store, err := pages.NewSupabase(cfg.Store.Supabase.URL, cfg.Store.Supabase.Key(), cfg.Store.Supabase.Table, nil)
		return store, noop, err
	default:
		store, err := pages.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}

func buildAgent(cfg config.Config, logger *slog.Logger) (*generator.Agent, error) {
	llm, err := generator.NewLLM(generator.LLMSettings{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey(),
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.LLM.Timeout.Std(),
		MockDelay: cfg.LLM.MockDelay.Std(),
	})
	if err != nil {
		return nil, err
	}
	detector, err := generator.NewLanguageDetector(cfg.Languages)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm, generator.WithLanguageDetector(detector), generator.WithLogger(logger))
}

func serveAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	agent, err := buildAgent(e.cfg, e.logger)
	if err != nil {
		return err
	}
	srv, err := server.New(agent, e.store, e.logger)
	if err != nil {
		return err
	}

	listen := e.cfg.ServerAddr
	if addr := c.String("addr"); addr != "" {
		listen = addr
	}
	if listen == "" {
		listen = ":8080"
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.PruneSessions(ctx, time.Hour, server.SessionIdleTTL)

	httpSrv := &http.Server{Addr: listen, Handler: srv.Routes(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("starting web server", "addr", listen, "provider", e.cfg.LLM.Provider, "store", e.cfg.Store.Driver)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		e.logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func pagesListAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	recs, err := e.store.List(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No landing pages found")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-10s  %-19s\n", "ID", "Company", "Theme", "Updated")
	fmt.Println(strings.Repeat("-", 92))
	for _, r := range recs {
		fmt.Printf("%-36s  %-20s  %-10s  %-19s\n",
			r.ID,
			truncate(r.CompanyName, 20),
			r.Theme,
			r.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Printf("\nTotal: %d pages\n", len(recs))
	return nil
}

func pagesShowAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("page id is required")
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	rec, err := e.store.Get(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}
	out, err := jsonIndent(rec)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func pagesDeleteAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("page id is required")
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.Delete(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

func exportAction(c *cli.Context) error {
	formats, err := parseFormats(c.String("format"))
	if err != nil {
		return err
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	rec, err := e.store.Get(c.Context, c.String("id"))
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}
	pub, err := publisher.New(c.String("out"), e.logger)
	if err != nil {
		return err
	}
	paths, err := pub.Write(rec.Content(), formats...)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func parseFormats(s string) ([]publisher.Format, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	f, err := publisher.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []publisher.Format{f}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
