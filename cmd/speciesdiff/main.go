package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/speciesdiff"
	"github.com/bft-labs/speciesdiff/internal/adapters/report"
	"github.com/bft-labs/speciesdiff/internal/cliconfig"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/pkg/log"
)

// Process exit codes.
const (
	exitOK            = 0
	exitGeneric       = 1
	exitNotFound      = 2
	exitDataFormat    = 3
	exitInvalidConfig = 4
	exitIOWrite       = 5
)

const longHelp = `
Compare two species-name datasets and report what they share.

Each input is a flat mapping of keys to species names (JSON, YAML or TOML).
speciesdiff computes the common species, the species unique to each side and
the union, then writes any of:

  summary    analysis_report.txt
  lists      analysis_results.txt
  workbook   plant_datasets_analysis_<timestamp>.xlsx
  chart      visualizations/species_analysis.html

Configure via speciesdiff.toml, SPECIESDIFF_* environment variables or flags
(flags win over environment, environment wins over the file).
`

var exampleUsage = strings.TrimSpace(`
  speciesdiff --input-a plantclef2015.json --input-b plantnet300k.json
  speciesdiff summary --lang en
  speciesdiff watch --reports summary,chart --debounce 500ms
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// cli carries the configuration shared by every command.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
}

func run(args []string) int {
	c := &cli{
		cfg:    cliconfig.DefaultConfig(),
		logger: log.NewZerologAdapter("info"),
	}

	root := newRootCommand(c)
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		c.logger.Error("speciesdiff", log.Err(err))
		return exitCode(err)
	}
	return exitOK
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "speciesdiff",
		Short:         "Compare two species-name datasets and write overlap reports",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.analyze(cmd.Context(), c.cfg.Reports)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", fmt.Sprintf("path to config file (default: ./%s if present)", cliconfig.DefaultConfigPath))
	flags.StringVar(&c.cfg.InputA, "input-a", c.cfg.InputA, "first dataset (key -> species name mapping)")
	flags.StringVar(&c.cfg.InputB, "input-b", c.cfg.InputB, "second dataset (key -> species name mapping)")
	flags.StringVar(&c.cfg.LabelA, "label-a", c.cfg.LabelA, "display label of the first dataset")
	flags.StringVar(&c.cfg.LabelB, "label-b", c.cfg.LabelB, "display label of the second dataset")
	flags.StringVar(&c.cfg.InputFormat, "input-format", c.cfg.InputFormat, "input format: auto, json, yaml or toml")
	flags.StringVar(&c.cfg.OutputDir, "output-dir", c.cfg.OutputDir, "directory for every report")
	flags.StringVar(&c.cfg.Language, "lang", c.cfg.Language, "report language: zh or en")
	flags.StringVar(&c.cfg.AssetsHost, "assets-host", c.cfg.AssetsHost, fmt.Sprintf("load echarts from this base URL (e.g. %s) instead of inlining it into the chart page", report.DefaultAssetsHost))
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn or error")
	flags.StringSliceVar(&c.cfg.Reports, "reports", c.cfg.Reports, fmt.Sprintf("reports to write for the default and watch commands %v", report.AllKinds))
	flags.DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "quiet period after an input change before rerunning (watch)")

	root.AddCommand(
		&cobra.Command{
			Use:   "all",
			Short: "Write the configured reports (default: all four)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.analyze(cmd.Context(), c.cfg.Reports)
			},
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Write the text summary",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.analyze(cmd.Context(), []string{report.KindSummary})
			},
		},
		&cobra.Command{
			Use:   "analyze",
			Short: "Write the species lists and the xlsx workbook",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.analyze(cmd.Context(), []string{report.KindLists, report.KindWorkbook})
			},
		},
		&cobra.Command{
			Use:   "visualize",
			Short: "Write the HTML chart page",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.analyze(cmd.Context(), []string{report.KindChart})
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Write the configured reports and rewrite them whenever an input changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.watch(cmd.Context())
			},
		},
	)

	return root
}

// resolve layers file, environment and flags into c.cfg and builds the logger.
func (c *cli) resolve(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := c.cfgPath
	if cfgFile == "" && cliconfig.FileExists(cliconfig.DefaultConfigPath) {
		cfgFile = cliconfig.DefaultConfigPath
	}
	if cfgFile != "" {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	// SPECIESDIFF_* override the file but not explicit flags.
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = log.NewZerologAdapter(c.cfg.LogLevel)
	c.logger.Debug("configuration",
		log.String("config_file", cfgFile),
		log.String("input_a", c.cfg.InputA),
		log.String("input_b", c.cfg.InputB),
		log.String("output_dir", c.cfg.OutputDir),
		log.String("lang", c.cfg.Language),
		log.Strings("reports", c.cfg.Reports),
		log.Bool("inline_chart_runtime", c.cfg.AssetsHost == ""),
	)
	return nil
}

func (c *cli) analyze(ctx context.Context, reports []string) error {
	cfg := c.cfg
	cfg.Reports = reports

	out, err := speciesdiff.Run(ctx, cfg, speciesdiff.WithLogger(c.logger))
	if err != nil {
		return err
	}
	printCounts(out.Result)
	return nil
}

func (c *cli) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.logger.Info("watching inputs",
		log.String("input_a", c.cfg.InputA),
		log.String("input_b", c.cfg.InputB),
		log.Duration("debounce", c.cfg.Debounce),
	)
	err := speciesdiff.Watch(ctx, c.cfg, speciesdiff.WithLogger(c.logger))
	c.logger.Info("stopped watching")
	return err
}

// printCounts writes the six cardinalities to stdout.
func printCounts(r speciesdiff.Result) {
	n := r.Counts()
	fmt.Printf("%s: %d\n", r.LabelA, n.A)
	fmt.Printf("%s: %d\n", r.LabelB, n.B)
	fmt.Printf("common: %d\n", n.Common)
	fmt.Printf("only %s: %d\n", r.LabelA, n.OnlyA)
	fmt.Printf("only %s: %d\n", r.LabelB, n.OnlyB)
	fmt.Printf("union: %d\n", n.Union)
}

// exitCode maps an error to the process exit status by its kind.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case domain.IsKind(err, domain.KindNotFound):
		return exitNotFound
	case domain.IsKind(err, domain.KindDataFormat):
		return exitDataFormat
	case domain.IsKind(err, domain.KindInvalidConfig):
		return exitInvalidConfig
	case domain.IsKind(err, domain.KindIOWrite):
		return exitIOWrite
	default:
		return exitGeneric
	}
}
