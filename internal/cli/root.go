// Package cli implements the readability command line tool.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zombar/readability-analyzer/internal/aidetect"
	"github.com/zombar/readability-analyzer/internal/analyzer"
	"github.com/zombar/readability-analyzer/internal/config"
	"github.com/zombar/readability-analyzer/internal/ingest"
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/report"
	"github.com/zombar/readability-analyzer/internal/tokenize"
	"github.com/zombar/readability-analyzer/internal/validation"
)

// app is the state shared by every subcommand
type app struct {
	format      string
	inputFormat string
	configPath  string

	cfg      *config.Config
	analyzer *analyzer.Analyzer
	renderer *report.Renderer
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "readability",
		Short: "Readability, hard sentence and AI phrasing checks for prose",
		Long: `readability scores prose the way an editor would.

It reports readability formulas, ranks the hardest sentences with the
reasons they are hard, and flags phrasing that is typical of
machine-generated text. Input is a .txt, .md or .pdf file, or stdin.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.format, "format", "f", "terminal", "Output format (terminal, json)")
	root.PersistentFlags().StringVar(&a.inputFormat, "input-format", "", "Input format when reading stdin (text, markdown, pdf)")
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("CONFIG_PATH"), "Path to a YAML config file (env: CONFIG_PATH)")

	root.AddCommand(
		a.analyzeCmd(),
		a.sentencesCmd(),
		a.aiCmd(),
		a.batchCmd(),
		a.compareCmd(),
		versionCmd(),
	)

	return root
}

// setup loads configuration and builds the analyzer before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	format, err := report.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.renderer = report.New(cmd.OutOrStdout(), format)

	if a.cfg, err = config.Load(a.configPath); err != nil {
		return err
	}

	catalog, err := aidetect.BuildCatalog()
	if err != nil {
		return fmt.Errorf("failed to build pattern catalog: %w", err)
	}
	a.analyzer = analyzer.New(aidetect.NewDetector(catalog, a.cfg.Scoring), tokenize.Default())
	return nil
}

// readInput loads one input argument. "-" or no argument reads stdin.
func (a *app) readInput(cmd *cobra.Command, arg string) (string, error) {
	var (
		text string
		err  error
	)

	if arg == "" || arg == "-" {
		format := ingest.FormatText
		if a.inputFormat != "" {
			if format, err = ingest.ParseFormat(a.inputFormat); err != nil {
				return "", err
			}
		}
		text, err = ingest.Read(cmd.InOrStdin(), format)
	} else {
		text, err = ingest.ReadFile(arg)
	}
	if err != nil {
		return "", err
	}

	label := arg
	if label == "" || label == "-" {
		label = "stdin"
	}
	cleaned, err := validation.Text(text)
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return cleaned, nil
}

func (a *app) sensitivity(s string) (models.Sensitivity, error) {
	if s == "" {
		s = a.cfg.Analysis.DefaultSensitivity
	}
	return validation.Sensitivity(s)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func writeLine(w io.Writer, s string) {
	fmt.Fprintln(w, s)
}
