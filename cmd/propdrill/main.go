// Package main provides the CLI entrypoint for propdrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/propdrill/internal/config"
	"github.com/verte-zerg/propdrill/internal/generator"
	"github.com/verte-zerg/propdrill/internal/lineui"
	"github.com/verte-zerg/propdrill/internal/logger"
	"github.com/verte-zerg/propdrill/internal/model"
	"github.com/verte-zerg/propdrill/internal/session"
	"github.com/verte-zerg/propdrill/internal/stats"
	"github.com/verte-zerg/propdrill/internal/tui"
)

const (
	defaultRounds = session.DefaultRounds
	maxRounds     = 500
)

type practiceFlags struct {
	rounds   int
	seed     int64
	plain    bool
	debugLog string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &practiceFlags{}
	rootCmd := &cobra.Command{
		Use:           "propdrill",
		Short:         "Proportion drill trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPracticeCmd(cmd, flags)
		},
	}

	rootCmd.Flags().IntVar(&flags.rounds, "rounds", defaultRounds, "answers before the final evaluation")
	rootCmd.Flags().Int64Var(&flags.seed, "seed", 0, "random seed for reproducible exercises")
	rootCmd.Flags().BoolVar(&flags.plain, "plain", false, "use the line-based interface instead of the TUI")
	rootCmd.Flags().StringVar(&flags.debugLog, "debug-log", "", "write an event trace to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExplainCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, flags *practiceFlags) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, flags, envCfg.Merge(fileCfg.Practice))
	if err := validateConfig(cfg); err != nil {
		return err
	}

	log, err := logger.New(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer syncLog(log)

	gen := generator.New()
	if cfg.HasSeed {
		gen = generator.NewSeeded(cfg.Seed)
	}
	disp := session.NewDispatcher(session.New(gen), log)
	log.Info("run started",
		zap.String("run_id", disp.RunID()),
		zap.Int("rounds", cfg.Rounds),
		zap.Bool("plain", usePlain(cfg)),
	)

	if usePlain(cfg) {
		ui := lineui.New(disp, cfg.Rounds, cmd.InOrStdin(), cmd.OutOrStdout(), stats.TerminalWidth())
		if err := ui.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("drill stopped: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(tui.NewModel(disp, cfg.Rounds), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := final.(*tui.Model); ok && m.Err() != nil {
		return fmt.Errorf("drill stopped: %w", m.Err())
	}
	return nil
}

// syncLog flushes the trace file. Failures are reported but do not change the
// exit status.
func syncLog(log *zap.Logger) {
	if err := log.Sync(); err != nil {
		logErrf("failed to sync debug log: %v\n", err)
	}
}

func usePlain(cfg model.Config) bool {
	if cfg.Plain {
		return true
	}
	return !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd()))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Explain exercises and scoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), explainText()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func explainText() string {
	return fmt.Sprintf(`Each exercise shows two equal fractions, a/b = c/d, with one value missing.
One fraction uses numbers from %d to %d; the other is the same fraction
multiplied by a number from %d to %d. Type the missing value (1-999) and
press enter.

A wrong answer counts against two factors: the multiplier between the
fractions and the smaller of the two values in the row you had to fill.
After the last exercise the factor with the most errors is suggested as the
times table to practice, once it has been missed at least twice.
`,
		generator.MinBase, generator.MaxBase,
		generator.MinMultiplier, generator.MaxMultiplier,
	)
}

// resolveConfig applies file and environment values to every flag the user
// did not set explicitly.
func resolveConfig(cmd *cobra.Command, flags *practiceFlags, practice config.PracticeConfig) model.Config {
	applyIntConfig(cmd, "rounds", &flags.rounds, practice.Rounds)
	applyInt64Config(cmd, "seed", &flags.seed, practice.Seed)
	applyBoolConfig(cmd, "plain", &flags.plain, practice.Plain)
	applyStringConfig(cmd, "debug-log", &flags.debugLog, practice.DebugLog)

	return model.Config{
		Rounds:   flags.rounds,
		Seed:     flags.seed,
		HasSeed:  cmd.Flags().Changed("seed") || practice.Seed != nil,
		Plain:    flags.plain,
		DebugLog: flags.debugLog,
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# propdrill configuration
# Uncomment a value to enable it. Environment variables (PROPDRILL_ROUNDS,
# PROPDRILL_SEED, PROPDRILL_PLAIN, PROPDRILL_DEBUG_LOG) override these values;
# CLI flags override both.

[practice]
# rounds = %d             # Answers before the final evaluation
# seed = 1                # Fixed random seed for reproducible exercises
# plain = false           # Use the line-based interface instead of the TUI
# debug-log = %q
`,
		defaultRounds,
		config.DefaultDebugLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Rounds <= 0 {
		return fmt.Errorf("rounds must be > 0, got %d", cfg.Rounds)
	}
	if cfg.Rounds > maxRounds {
		return fmt.Errorf("rounds must be <= %d, got %d", maxRounds, cfg.Rounds)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
