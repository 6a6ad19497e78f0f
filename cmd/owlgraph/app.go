package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agenthands/owlgraph/internal/config"
	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/llm"
	"github.com/agenthands/owlgraph/internal/metrics"
	"github.com/agenthands/owlgraph/internal/ontology"
	"github.com/agenthands/owlgraph/internal/query"
	"github.com/agenthands/owlgraph/internal/schema"
	"github.com/agenthands/owlgraph/internal/server"
	"github.com/agenthands/owlgraph/internal/translate"
	"github.com/spf13/cobra"
)

// app carries what every subcommand shares.
type app struct {
	configPath string
	logLevel   string
	timeout    time.Duration

	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Export OWL ontologies to Neo4j and query them in natural language",
		Long: `owlgraph maps an ontology snapshot onto a Neo4j (or Memgraph) graph with
idempotent MERGE statements, and translates natural-language questions into
Cypher grounded on the live graph schema.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (TOML)")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.DurationVar(&a.timeout, "timeout", 0, "Deadline for the whole command (0 means none)")

	cmd.AddCommand(
		a.serveCmd(),
		a.exportCmd(),
		a.translateCmd(),
		a.queryCmd(),
		a.askCmd(),
		a.schemaCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (a *app) init(logOut io.Writer) error {
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLevel(a.logLevel)}))
	slog.SetDefault(a.logger)

	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	a.metrics = metrics.New()
	return nil
}

// context is canceled on SIGINT/SIGTERM and after --timeout when set.
func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if a.timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func (a *app) connect(ctx context.Context) (*driver.Neo4jDriver, error) {
	g := a.cfg.Graph
	return driver.NewNeo4jDriver(ctx, g.URI, g.User, g.Password,
		driver.WithDatabase(g.Database),
		driver.WithLogger(a.logger),
	)
}

// translator returns nil when no language model is configured.
func (a *app) translator(ctx context.Context) (*translate.Translator, func(), error) {
	if !a.cfg.LLM.Configured() {
		return nil, func() {}, nil
	}
	client, err := llm.NewClient(ctx, a.cfg.LLM, a.logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	if c, ok := client.(io.Closer); ok {
		cleanup = func() { _ = c.Close() }
	}
	return translate.NewTranslator(client, a.logger, a.metrics), cleanup, nil
}

// service connects to the store and assembles the query service.
func (a *app) service(ctx context.Context) (*query.Service, func(), error) {
	d, err := a.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	tr, closeLLM, err := a.translator(ctx)
	if err != nil {
		_ = d.Close(ctx)
		return nil, nil, err
	}
	cleanup := func() {
		closeLLM()
		_ = d.Close(context.Background())
	}
	return query.NewService(d, tr, a.logger, a.metrics), cleanup, nil
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			if err := d.EnsureIndexes(ctx); err != nil {
				return err
			}

			tr, closeLLM, err := a.translator(ctx)
			if err != nil {
				return err
			}
			defer closeLLM()
			if tr == nil {
				a.logger.Warn("no language model configured; natural-language routes will answer 503")
			}

			svc := query.NewService(d, tr, a.logger, a.metrics)
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			return server.NewServer(svc, a.metrics, a.logger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <snapshot.yaml>",
		Short: "Export an ontology snapshot to the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := ontology.Load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			if err := d.EnsureIndexes(ctx); err != nil {
				return err
			}

			svc := query.NewService(d, nil, a.logger, a.metrics)
			sum, err := svc.Export(ctx, snap)
			fmt.Fprintln(cmd.OutOrStdout(), sum.String())
			return err
		},
	}
}

func (a *app) translateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <question>",
		Short: "Translate a question into Cypher without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			tr, closeLLM, err := a.translator(ctx)
			if err != nil {
				return err
			}
			if tr == nil {
				return query.ErrLLMNotConfigured
			}
			defer closeLLM()

			question, err := query.CheckInput(strings.Join(args, " "))
			if err != nil {
				return err
			}

			// Schema grounding is best effort; translate without it when the
			// store is unreachable.
			schemaText := ""
			if d, err := a.connect(ctx); err != nil {
				a.logger.Warn("translating without schema", "error", err)
			} else {
				schemaText = schema.Describe(ctx, d, a.logger)
				_ = d.Close(context.Background())
			}

			q, err := tr.Translate(ctx, question, schemaText)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

func (a *app) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <cypher>",
		Short: "Run a Cypher statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			svc, cleanup, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := svc.Do(ctx, query.Request{Mode: query.ModeCypher, Input: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func (a *app) askCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Translate a question into Cypher and run it after confirmation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			svc, cleanup, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := svc.Ask(ctx, strings.Join(args, " "), false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Translated Cypher query:\n\n%s\n\n", resp.Query)
			if !yes && !confirm(cmd.InOrStdin(), out, "Execute this query?") {
				return nil
			}

			resp, err = svc.RunCypher(ctx, resp.Query)
			if err != nil {
				return err
			}
			printResult(out, resp)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Execute without asking")
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the graph vocabulary used for grounding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			fmt.Fprint(cmd.OutOrStdout(), schema.Describe(ctx, d, a.logger))
			return nil
		},
	}
}

func printResult(out io.Writer, resp *query.Response) {
	fmt.Fprint(out, resp.Formatted)
	if resp.Result != nil {
		fmt.Fprint(out, resp.Result.Counters.String())
	}
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
