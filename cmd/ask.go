package cmd

import (
	"errors"
	"fmt"
	"strings"

	"kina/internal/assistant"
	"kina/internal/chat"
	"kina/internal/config"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the budget assistant a one-off question",
	Long:  "Ask the Gemini-backed budget assistant a question about the loaded dataset.\nRequires a Gemini API key (GEMINI_API_KEY or `kina config`).",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	apiKey := config.GetAPIKey(cfg)
	if apiKey == "" {
		return fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or run `kina tui` setup)")
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	var opts []assistant.Option
	if cfg.Assistant.BaseURL != "" {
		opts = append(opts, assistant.WithBaseURL(cfg.Assistant.BaseURL))
	}
	if cfg.Assistant.Model != "" {
		opts = append(opts, assistant.WithModel(cfg.Assistant.Model))
	}

	client := assistant.NewClient(apiKey, store.Records(), opts...)
	question := strings.Join(args, " ")

	reply, err := client.Send(cmd.Context(), nil, question)
	if err != nil {
		if errors.Is(err, assistant.ErrUnavailable) {
			fmt.Println()
			fmt.Println("  " + chat.FallbackReply)
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Println(reply)
	return nil
}
