package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/filemeta/internal/config"
	"github.com/vvka-141/filemeta/internal/logging"
	"github.com/vvka-141/filemeta/internal/services"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// Environment variables read during configuration resolution.
const (
	EnvRoot               = "FILEMETA_ROOT"
	EnvPostgresConnection = "FILEMETA_POSTGRES_CONNECTION"
	EnvDefaultCurrency    = "FILEMETA_DEFAULT_CURRENCY"
)

type scanFlagValues struct {
	configPath      string
	layout          string
	csvPath         string
	noCSV           bool
	noConsole       bool
	json            bool
	defaultCurrency string
	ignore          []string
	checksum        bool
	postgres        string
	postgresTable   string
	postgresTimeout time.Duration
}

func newScanCmd() *cobra.Command {
	cmd, _ := newScanCmdWithFlags()
	return cmd
}

func newScanCmdWithFlags() (*cobra.Command, *scanFlagValues) {
	flags := &scanFlagValues{}

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a directory tree and write the metadata report",
		Long: `Scan walks every regular file under root and writes one report row per file.

Root resolution (first match wins):
  1. The root argument
  2. $FILEMETA_ROOT
  3. root in filemeta.yaml

Layouts:
  basic     File Name, File Path, Size (Bytes), Creation Time, Modification Time
  amounts   adds Amount and Currency parsed from names like invoice_100_50_usd.txt
            (letters, underscore, integer part, optional fraction, optional currency;
            the default currency applies when no currency token is present)

Configuration precedence: flags > environment (.env is loaded) > filemeta.yaml > defaults.

Examples:
  # Console table plus file_metadata.csv in the current directory
  filemeta scan ./invoices

  # Parse amounts, euro by default, no CSV
  filemeta scan ./invoices --layout amounts --default-currency EUR --no-csv

  # JSON for scripts, skipping temporary files
  filemeta scan ./invoices --json --no-csv --ignore '*.tmp'

  # Append the report to PostgreSQL
  filemeta scan ./invoices --postgres postgresql://user@localhost/reports`,
		Args:              OptionalRoot,
		ValidArgsFunction: completeRootDir,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "",
		"Path to a config file (default: ./"+config.ConfigFileName+" if present)")
	f.StringVar(&flags.layout, "layout", "",
		"Report layout: basic|amounts (default basic)")
	f.StringVar(&flags.csvPath, "csv", "",
		"CSV output path (default "+filemeta.DefaultCSVFileName+")")
	f.BoolVar(&flags.noCSV, "no-csv", false, "Do not write the CSV file")
	f.BoolVar(&flags.noConsole, "no-console", false, "Do not print the table to stdout")
	f.BoolVar(&flags.json, "json", false, "Print the report as JSON to stdout instead of a table")
	f.StringVar(&flags.defaultCurrency, "default-currency", "",
		"Currency for amounts without a currency token (default "+filemeta.DefaultCurrency+", or $"+EnvDefaultCurrency+")")
	f.StringSliceVar(&flags.ignore, "ignore", nil,
		"Gitignore-style pattern to exclude (can be specified multiple times)\n"+
			"Patterns from "+filemeta.IgnoreFileName+" in the root are always applied")
	f.BoolVar(&flags.checksum, "checksum", false, "Add a SHA-256 column (reads every file)")
	f.StringVar(&flags.postgres, "postgres", "",
		"PostgreSQL connection string; enables the database output (or $"+EnvPostgresConnection+")")
	f.StringVar(&flags.postgresTable, "postgres-table", "",
		"Destination table, optionally schema-qualified (default "+filemeta.DefaultPostgresTable+")")
	f.DurationVar(&flags.postgresTimeout, "postgres-timeout", 0,
		"Upper bound for the PostgreSQL write, e.g. 30s (default: none)")

	cmd.MarkFlagsMutuallyExclusive("csv", "no-csv")
	_ = cmd.RegisterFlagCompletionFunc("layout", completeLayouts)

	return cmd, flags
}

func runScan(cmd *cobra.Command, flags *scanFlagValues, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)

	cfg, err := buildReportConfig(cmd, flags, args, verbose)
	if err != nil {
		return err
	}

	logger.Verbose("Configuration resolved: root=%s layout=%s currency=%s console=%t json=%t csv=%q postgres=%t",
		cfg.Root, cfg.Layout, cfg.DefaultCurrency, cfg.Console, cfg.JSON, cfg.CSVPath, cfg.PostgresConnection != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := services.NewDefaultReportService(cmd.OutOrStdout(), logger)
	if _, err := svc.Run(ctx, cfg); err != nil {
		return err
	}
	return nil
}

// buildReportConfig merges defaults, filemeta.yaml, the environment and
// flags, in increasing order of precedence.
func buildReportConfig(cmd *cobra.Command, flags *scanFlagValues, args []string, verbose bool) (filemeta.ReportConfig, error) {
	_ = godotenv.Load()

	cfg := filemeta.ReportConfig{
		Layout:          filemeta.LayoutBasic,
		DefaultCurrency: filemeta.DefaultCurrency,
		Console:         true,
		CSVPath:         filemeta.DefaultCSVFileName,
		PostgresTable:   filemeta.DefaultPostgresTable,
		Verbose:         verbose,
	}

	projectCfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return filemeta.ReportConfig{}, err
	}
	if err := applyProjectConfig(&cfg, projectCfg); err != nil {
		return filemeta.ReportConfig{}, err
	}

	applyEnvironment(&cfg)

	if err := applyFlags(cmd, &cfg, flags, args); err != nil {
		return filemeta.ReportConfig{}, err
	}

	// JSON owns stdout.
	if cfg.JSON {
		cfg.Console = false
	}

	return cfg, nil
}

// loadProjectConfig loads an explicit config file, or filemeta.yaml from the
// working directory when present.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	if configPath != "" {
		projectCfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", configPath, filemeta.ErrInvalidConfig, err)
		}
		return projectCfg, nil
	}

	projectCfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, filemeta.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

func applyProjectConfig(cfg *filemeta.ReportConfig, projectCfg *config.ProjectConfig) error {
	if projectCfg == nil {
		return nil
	}

	if projectCfg.Root != "" {
		cfg.Root = projectCfg.Root
	}
	if projectCfg.Layout != "" {
		layout, err := filemeta.ParseLayout(projectCfg.Layout)
		if err != nil {
			return fmt.Errorf("invalid layout in %s: %w", config.ConfigFileName, err)
		}
		cfg.Layout = layout
	}
	if projectCfg.DefaultCurrency != "" {
		cfg.DefaultCurrency = projectCfg.DefaultCurrency
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, projectCfg.Ignore...)
	cfg.Checksum = projectCfg.Checksum

	out := projectCfg.Output
	if out.Console != nil {
		cfg.Console = *out.Console
	}
	if out.CSVPath != "" {
		cfg.CSVPath = out.CSVPath
	}
	if out.CSV != nil && !*out.CSV {
		cfg.CSVPath = ""
	}
	cfg.JSON = out.JSON

	if projectCfg.Postgres.Connection != "" {
		cfg.PostgresConnection = projectCfg.Postgres.Connection
	}
	if projectCfg.Postgres.Table != "" {
		cfg.PostgresTable = projectCfg.Postgres.Table
	}
	timeout, err := projectCfg.PostgresTimeout()
	if err != nil {
		return fmt.Errorf("%w: %w", filemeta.ErrInvalidConfig, err)
	}
	cfg.PostgresTimeout = timeout

	return nil
}

func applyEnvironment(cfg *filemeta.ReportConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvRoot)); v != "" {
		cfg.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPostgresConnection)); v != "" {
		cfg.PostgresConnection = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultCurrency)); v != "" {
		cfg.DefaultCurrency = v
	}
}

func applyFlags(cmd *cobra.Command, cfg *filemeta.ReportConfig, flags *scanFlagValues, args []string) error {
	changed := cmd.Flags().Changed

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	if changed("layout") {
		layout, err := filemeta.ParseLayout(flags.layout)
		if err != nil {
			return err
		}
		cfg.Layout = layout
	}
	if changed("default-currency") {
		cfg.DefaultCurrency = flags.defaultCurrency
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, flags.ignore...)
	if changed("checksum") {
		cfg.Checksum = flags.checksum
	}

	if changed("csv") {
		cfg.CSVPath = flags.csvPath
	}
	if flags.noCSV {
		cfg.CSVPath = ""
	}
	if flags.noConsole {
		cfg.Console = false
	}
	if changed("json") {
		cfg.JSON = flags.json
	}

	if changed("postgres") {
		cfg.PostgresConnection = flags.postgres
	}
	if changed("postgres-table") {
		cfg.PostgresTable = flags.postgresTable
	}
	if changed("postgres-timeout") {
		cfg.PostgresTimeout = flags.postgresTimeout
	}

	return nil
}
