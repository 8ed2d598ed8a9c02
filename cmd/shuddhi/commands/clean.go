package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/indusnlp/shuddhi/internal/batch"
	"github.com/indusnlp/shuddhi/internal/logger"
	"github.com/indusnlp/shuddhi/pkg/cleaner/rules"
	"github.com/indusnlp/shuddhi/pkg/shuddhi"
	"github.com/indusnlp/shuddhi/pkg/translit"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean text files, directories, or zip archives",
	Long: `Clean noisy Hindi/bilingual text documents.

Input can be a single .txt file, a directory (recursive), or a .zip
archive. Each document is written as <name>_cleaned.txt under the
output directory.

Examples:
  # Single file
  shuddhi clean -i chapter.txt -o cleaned/

  # Directory with extra boilerplate rules and redaction phrases
  shuddhi clean -i corpus/ -o cleaned/ --rules rules.yaml \
      --phrases phrases.txt

  # Offline run without the transliteration service
  shuddhi clean -i corpus.zip -o cleaned/ --no-translit`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	flags.StringP("input", "i", "", "input .txt file, directory, or .zip (required)")
	flags.StringP("output", "o", "cleaned", "output directory")
	flags.String("rules", "", "YAML/JSON rule chain applied before line processing")
	flags.String("phrases", "", "newline-delimited phrases to mask")
	flags.Bool("no-translit", false, "disable transliteration of Latin tokens")
	flags.Bool("no-redact", false, "disable phrase masking")
	flags.Float64("threshold", 0.7, "minimum in-script character ratio per line")
	flags.IntP("workers", "w", 4, "concurrent documents")
	flags.String("translit-url", translit.DefaultBaseURL, "transliteration service base URL")

	_ = cleanCmd.MarkFlagRequired("input")
}

func runClean(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	workers, _ := cmd.Flags().GetInt("workers")

	opts := []shuddhi.Option{
		shuddhi.WithScriptThreshold(threshold),
	}

	if rulesPath, _ := cmd.Flags().GetString("rules"); rulesPath != "" {
		chain, err := rules.FromFile(rulesPath)
		if err != nil {
			logger.Error("failed to load rules", "path", rulesPath, "error", err)
			return err
		}
		opts = append(opts, shuddhi.WithRules(chain))
		logger.Debug("rules loaded", "path", rulesPath, "count", len(chain))
	}

	if phrasesPath, _ := cmd.Flags().GetString("phrases"); phrasesPath != "" {
		opts = append(opts, shuddhi.WithPhraseFile(phrasesPath))
	}
	if noRedact, _ := cmd.Flags().GetBool("no-redact"); noRedact {
		opts = append(opts, shuddhi.WithoutRedaction())
	}

	if noTranslit, _ := cmd.Flags().GetBool("no-translit"); !noTranslit {
		baseURL, _ := cmd.Flags().GetString("translit-url")
		opts = append(opts, shuddhi.WithTransliterator(
			translit.NewREST(translit.RESTConfig{BaseURL: baseURL}),
		))
	}

	pipeline, err := shuddhi.New(opts...)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return err
	}

	runner, err := batch.NewRunner(pipeline, batch.Config{Workers: workers})
	if err != nil {
		return err
	}

	logInfo("Cleaning %s -> %s", input, output)
	sum, err := runner.Run(ctx, input, output)
	if err != nil {
		logger.Error("batch failed", "error", err)
		return err
	}

	logInfo("Done: %d cleaned, %d failed", sum.Processed, sum.Failed)
	return nil
}
