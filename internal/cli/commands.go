package cli

import (
	"github.com/spf13/cobra"

	"github.com/zombar/readability-analyzer/internal/analyzer"
	"github.com/zombar/readability-analyzer/internal/validation"
	"github.com/zombar/readability-analyzer/internal/version"
)

func (a *app) analyzeCmd() *cobra.Command {
	var metrics string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Compute readability scores",
		Long: `Compute Flesch-Kincaid grade and Flesch reading ease, plus any of the
optional metrics (smog, ari, coleman_liau, linsear, gunning_fog, dale_chall).
Without --metrics all optional metrics are reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			selected, err := validation.Metrics(splitList(metrics))
			if err != nil {
				return err
			}

			result, err := a.analyzer.Readability(cmd.Context(), text, selected)
			if err != nil {
				return err
			}
			return a.renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&metrics, "metrics", "m", "", "Comma separated optional metrics: smog, ari, coleman_liau, linsear, gunning_fog, dale_chall")
	return cmd
}

func (a *app) sentencesCmd() *cobra.Command {
	var (
		count     int
		threshold float64
	)

	cmd := &cobra.Command{
		Use:     "sentences [file]",
		Aliases: []string{"hard"},
		Short:   "Rank the hardest sentences",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}

			n := a.cfg.Analysis.DefaultCount
			if cmd.Flags().Changed("count") {
				n = count
			}
			if n, err = validation.Count(n); err != nil {
				return err
			}

			var limit *float64
			if cmd.Flags().Changed("threshold") {
				t, err := validation.Threshold(threshold)
				if err != nil {
					return err
				}
				limit = &t
			}

			result, err := a.analyzer.RankHardSentences(cmd.Context(), text, n, limit)
			if err != nil {
				return err
			}
			return a.renderer.Render(result)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of sentences to return (1-100)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Also count sentences at or above this grade level (0-30)")
	return cmd
}

func (a *app) aiCmd() *cobra.Command {
	var sensitivity string

	cmd := &cobra.Command{
		Use:   "ai [file]",
		Short: "Check for phrasing typical of AI-generated text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			level, err := a.sensitivity(sensitivity)
			if err != nil {
				return err
			}
			return a.renderer.Render(a.analyzer.DetectAIPatterns(cmd.Context(), text, level))
		},
	}

	cmd.Flags().StringVarP(&sensitivity, "sensitivity", "s", "", "low, medium or high (default from config)")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		types       string
		sensitivity string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "batch file...",
		Short: "Analyze several files in one run",
		Args:  cobra.RangeArgs(1, validation.MaxBatchSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := make([]string, len(args))
			for i, arg := range args {
				text, err := a.readInput(cmd, arg)
				if err != nil {
					return err
				}
				texts[i] = text
			}

			kinds, err := validation.AnalysisTypes(splitList(types))
			if err != nil {
				return err
			}

			opts := analyzer.DefaultOptions()
			if opts.Sensitivity, err = a.sensitivity(sensitivity); err != nil {
				return err
			}
			opts.Count = a.cfg.Analysis.DefaultCount
			if cmd.Flags().Changed("count") {
				opts.Count = count
			}
			if opts.Count, err = validation.Count(opts.Count); err != nil {
				return err
			}

			result, err := a.analyzer.Batch(cmd.Context(), texts, kinds, opts)
			if err != nil {
				return err
			}
			return a.renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&types, "types", "", "Comma separated analyses: readability, sentences, ai_patterns (default all)")
	cmd.Flags().StringVarP(&sensitivity, "sensitivity", "s", "", "low, medium or high (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "Hard sentences per text")
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var sensitivity string

	cmd := &cobra.Command{
		Use:   "compare before after",
		Short: "Compare a revision against the original",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			after, err := a.readInput(cmd, args[1])
			if err != nil {
				return err
			}

			opts := analyzer.DefaultOptions()
			if opts.Sensitivity, err = a.sensitivity(sensitivity); err != nil {
				return err
			}

			result, err := a.analyzer.Compare(cmd.Context(), before, after, opts)
			if err != nil {
				return err
			}
			return a.renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&sensitivity, "sensitivity", "s", "", "low, medium or high (default from config)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			writeLine(cmd.OutOrStdout(), "readability "+version.String())
		},
	}
}
