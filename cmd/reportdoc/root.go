package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fieldscout/reportdoc/pkg/reportdoc"
)

func newRootCommand() *cobra.Command {
	var verbose bool
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:           "reportdoc",
		Short:         "Assemble multi-page DOCX reports from a single-page template",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(newGenerateCommand(&logger))

	return rootCmd
}

func newGenerateCommand(logger **zap.Logger) *cobra.Command {
	var templatePath string
	var outputPath string
	var entriesPath string
	var workDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report from a template and an entries manifest",
		Long: `Generates a multi-page DOCX report. The template's first body block is
used as the page pattern; one page is emitted per entry in the manifest,
in manifest order.

The entries manifest is a .toml, .yaml or .json file:

  [[entries]]
  header = "Site A"
  description = "North gate"
  image = "photos/site-a.png"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := reportdoc.LoadEntries(entriesPath)
			if err != nil {
				return err
			}

			gen := reportdoc.NewGenerator(
				reportdoc.WithWorkDir(workDir),
				reportdoc.WithLogger(*logger),
			)
			if err := gen.Generate(templatePath, outputPath, entries); err != nil {
				if idx := reportdoc.EntryIndex(err); idx >= 0 {
					return fmt.Errorf("failed while processing entry %d: %w", idx, err)
				}
				return err
			}

			(*logger).Info("report generated",
				zap.String("output", outputPath),
				zap.Int("pages", len(entries)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "template.docx", "Template DOCX path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "report.docx", "Output DOCX path")
	cmd.Flags().StringVarP(&entriesPath, "entries", "e", "", "Entries manifest (.toml, .yaml or .json)")
	cmd.Flags().StringVar(&workDir, "workdir", "", "Parent directory for scratch working trees")
	_ = cmd.MarkFlagRequired("entries")

	return cmd
}
