// Package commands implements the CLI commands for shuddhi.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "shuddhi",
	Short: "Cleaning pipeline for Hindi and bilingual text corpora",
	Long: `Shuddhi cleans noisy Hindi/English text for corpus building:
boilerplate removal, script filtering, math and table preservation,
phrase redaction, and downstream Q&A generation.

Examples:
  # Clean a single file
  shuddhi clean -i chapter.txt -o cleaned/

  # Clean a directory or zip with custom rules
  shuddhi clean -i corpus.zip -o cleaned/ --rules rules.yaml

  # Generate Q&A from cleaned text
  shuddhi qna -i cleaned/chapter_cleaned.txt -o chapter_QA.json \
      -p anthropic`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.shuddhi.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".shuddhi")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SHUDDHI")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
