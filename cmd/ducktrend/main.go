// Command ducktrend renders SVG sparklines from the command line, a terminal
// demo or an HTTP endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nexusriot/ducktrend/internal/config"
	"github.com/nexusriot/ducktrend/internal/logger"
	"github.com/nexusriot/ducktrend/internal/server"
	"github.com/nexusriot/ducktrend/internal/ui"
	"github.com/nexusriot/ducktrend/pkg/trend"
	"github.com/nexusriot/ducktrend/pkg/trend/chart"
)

var (
	configPath string
	logLevel   string
	logFile    string
	pretty     bool

	cfg     config.Config
	log     zerolog.Logger
	logDest *os.File
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd().ExecuteContext(ctx)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func closeLog() {
	if logDest == nil {
		return
	}
	if err := logDest.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close log file:", err)
	}
	logDest = nil
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ducktrend",
		Short:        "Render smooth SVG sparklines",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or JSON config file (default: built-in demo)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human readable log output")

	root.AddCommand(renderCmd(), codeCmd(), initCmd(), demoCmd(), serveCmd())
	return root
}

func setup(cmd *cobra.Command) error {
	cfg = config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logDest = f
		w = f
	}
	// the demo owns the terminal
	if cmd.Name() == "demo" && logFile == "" {
		log = logger.Nop()
	} else {
		log = logger.New(w, logLevel, pretty)
	}
	cmd.SetContext(logger.Set(cmd.Context(), log))
	return nil
}

func renderCmd() *cobra.Command {
	var (
		data     string
		score    float64
		noScore  bool
		gradient []string
		smooth   bool
		minify   bool
		id       string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the chart as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if f.Changed("data") {
				points, err := trend.ParseData(data)
				if err != nil {
					return err
				}
				cfg.Data = points
			}
			if f.Changed("score") {
				cfg.Score = &score
			}
			if noScore {
				cfg.Score = nil
			}
			if f.Changed("gradient") {
				cfg.Gradient = gradient
			}
			if f.Changed("smooth") {
				cfg.Smooth = smooth
			}
			if f.Changed("minify") {
				cfg.Minify = minify
			}
			if f.Changed("id") {
				cfg.ID = id
			}

			opts, err := cfg.ChartOptions()
			if err != nil {
				return err
			}
			c, err := chart.New(opts)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Empty() {
				return errors.New("nothing to render: need at least 2 data points")
			}

			if output == "" {
				err = c.Render(cmd.OutOrStdout())
			} else {
				err = writeFile(output, c.Render)
			}
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			logger.Get(cmd.Context()).Debug().Str("chart", cfg.String()).Str("id", c.ID()).Msg("rendered")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&data, "data", "d", "", `Comma separated values, e.g. "1,4,mon=2"`)
	f.Float64Var(&score, "score", 0, "Marker score in standard deviations")
	f.BoolVar(&noScore, "no-score", false, "Draw no marker")
	f.StringSliceVar(&gradient, "gradient", nil, "Two or three gradient colors")
	f.BoolVar(&smooth, "smooth", true, "Round the corners of the line")
	f.BoolVar(&minify, "minify", false, "Minify the SVG")
	f.StringVar(&id, "id", "", "Instance id (default: random)")
	f.StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

// writeFile creates path and fills it with write. A failed close is
// reported like a failed write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func codeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code",
		Short: "Print Go code that reproduces the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Snippet(cfg)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective config as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return cfg.Save(args[0])
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Interactive terminal demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := tea.NewProgram(
				ui.NewModel(cfg, log),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return server.New(cfg, log).ListenAndServe(cmd.Context(), cfg.Listen)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", ":8080", "Listen address")
	return cmd
}
