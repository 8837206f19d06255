package cli

import (
	"context"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/internal/metrics"
	"github.com/yaklabco/eslintls/internal/server"
	"github.com/yaklabco/eslintls/pkg/config"
)

type serveFlags struct {
	stdio bool
	trace bool
}

func newServeCommand() *cobra.Command {
	var cfg config.Config
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin and stdout",
		Long: `Run the ESLint language server, speaking JSON-RPC over stdin and stdout.

Logs go to stderr. Client settings sent with initialize and
workspace/didChangeConfiguration are applied on top of the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &cfg, flags)
		},
	}

	// Editors launch language servers with --stdio; it is the only transport.
	cmd.Flags().BoolVar(&flags.stdio, "stdio", true, "communicate over stdin and stdout")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "log every JSON-RPC message at debug level")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&cfg.NodePath, "node-path", "", "extra node_modules directory searched for eslint")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runServe(cmd *cobra.Command, cliCfg *config.Config, flags *serveFlags) error {
	// Stdout carries the protocol.
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), config.DefaultLogLevel)

	cfg, err := loadConfig(cmd, cliCfg, logger)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)

	ctx, cancel := context.WithCancel(logging.WithLogger(commandContext(cmd), logger))
	defer cancel()

	var serverMetrics *metrics.Metrics
	if cfg.MetricsAddr != "" {
		serverMetrics = metrics.New()
		go func() {
			if err := serverMetrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Warn("metrics server stopped", logging.FieldError, err)
			}
		}()
	}

	exitCodes := make(chan int, 1)
	handler := server.NewHandler(server.Options{
		Config:  cfg.Config,
		Metrics: serverMetrics,
		Logger:  logger,
		Exit: func(code int) {
			select {
			case exitCodes <- code:
			default:
			}
		},
	})

	var connOpts []jsonrpc2.ConnOpt
	if flags.trace {
		connOpts = append(connOpts, server.LogMessages(logger))
	}

	stream := jsonrpc2.NewBufferedStream(server.StdRWC{In: os.Stdin, Out: os.Stdout}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, handler, connOpts...)
	handler.SetConn(conn)
	logger.Info("language server started", logging.FieldWorkingDir, cfg.workDir)

	go func() {
		<-conn.DisconnectNotify()
		code := ExitLintErrors
		if handler.ShutdownRequested() {
			code = ExitSuccess
		}
		handler.Terminate(code, "")
	}()

	var code int
	select {
	case code = <-exitCodes:
	case <-ctx.Done():
		code = ExitInternalError
	}
	_ = conn.Close()

	if code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}
