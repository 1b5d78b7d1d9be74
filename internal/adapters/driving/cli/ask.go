package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/logger"
)

var (
	askHindi bool
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askHindi, "hindi", false, "ask and answer in Hindi")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON with source chunk IDs")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Degraded {
		logger.Warn("%s", a.DegradedReason)
	}

	lang := domain.LanguageEnglish
	if askHindi {
		lang = domain.LanguageHindi
	}

	answer, err := a.Chat.Ask(cmd.Context(), "", domain.Query{
		Text:     strings.Join(args, " "),
		Language: lang,
	})
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(struct {
			Reply   string   `json:"reply"`
			Sources []string `json:"sources,omitempty"`
		}{answer.Text, answer.ContextIDs}, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Println(answer.Text)
	return nil
}
