package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/indusnlp/shuddhi/internal/logger"
	"github.com/indusnlp/shuddhi/internal/output"
	"github.com/indusnlp/shuddhi/pkg/qna"
)

var qnaCmd = &cobra.Command{
	Use:   "qna",
	Short: "Generate question-answer pairs from cleaned text",
	Long: `Generate educational Q&A pairs from a cleaned text file.

Requires an API key for the chosen provider (ANTHROPIC_API_KEY or
OPENAI_API_KEY).

Examples:
  # Defaults: anthropic, JSON to stdout
  shuddhi qna -i cleaned/chapter_cleaned.txt

  # OpenAI with a specific model, 100 questions to a file
  shuddhi qna -i cleaned/chapter_cleaned.txt -o chapter_QA.json \
      -p openai -m gpt-4o -n 100

  # Plain-text study sheet
  shuddhi qna -i cleaned/chapter_cleaned.txt --format text`,
	RunE: runQnA,
}

func init() {
	rootCmd.AddCommand(qnaCmd)

	flags := qnaCmd.Flags()

	flags.StringP("input", "i", "", "cleaned .txt file (required)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("provider", "p", "anthropic", "LLM provider: anthropic, openai")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.IntP("num-questions", "n", 25, "total questions to generate")
	flags.Int("batch-size", 25, "questions per model call")
	flags.Int("chunk-size", 6000, "source runes per model call")
	flags.String("format", "json", "output format: json, jsonl, yaml, text")

	_ = qnaCmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
}

func runQnA(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	input, _ := cmd.Flags().GetString("input")
	raw, err := os.ReadFile(input)
	if err != nil {
		logger.Error("failed to read input", "path", input, "error", err)
		return err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("input file is empty: %s", input)
	}

	providerName := viper.GetString("provider")
	provider, err := qna.NewProvider(providerName, qna.ProviderConfig{
		APIKey: viper.GetString("api_key"),
		Model:  viper.GetString("model"),
	})
	if err != nil {
		logger.Error("failed to create provider", "provider", providerName, "error", err)
		return err
	}
	logger.Debug("provider ready", "provider", provider.Name(), "model", provider.Model())

	cfg := qna.DefaultConfig()
	cfg.NumQuestions, _ = cmd.Flags().GetInt("num-questions")
	cfg.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	cfg.ChunkSize, _ = cmd.Flags().GetInt("chunk-size")

	gen, err := qna.NewGenerator(provider, cfg)
	if err != nil {
		return err
	}

	logInfo("Generating %d questions with %s", cfg.NumQuestions, provider.Name())
	records, err := gen.Generate(ctx, string(raw))
	if err != nil {
		logger.Error("generation failed", "error", err)
		return err
	}
	logInfo("Generated %d questions", len(records))

	formatStr, _ := cmd.Flags().GetString("format")
	dest := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(dest, output.Format(formatStr))
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Close()
}
