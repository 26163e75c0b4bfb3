package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Ask the AI coach about your trading",
	Long: `The coach reads the journal and answers through the configured AI
provider (ai.provider). It never changes trades.

Subcommands:
  review - Weekly review of the last 7 days
  ask    - One question with your 10 most recent trades as context
  chat   - Interactive question and answer session`,
}

var coachReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Generate a weekly performance review",
	Args:  cobra.NoArgs,
	RunE:  runCoachReview,
}

var coachAskCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask the coach one question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCoachAsk,
}

var coachChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the coach interactively",
	Args:  cobra.NoArgs,
	RunE:  runCoachChat,
}

func init() {
	rootCmd.AddCommand(coachCmd)
	coachCmd.AddCommand(coachReviewCmd)
	coachCmd.AddCommand(coachAskCmd)
	coachCmd.AddCommand(coachChatCmd)
}

func runCoachReview(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.coach()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Analyzing the last 7 days...")
	reply := c.WeeklyReview(cmd.Context(), a.journal.Trades(), a.now())
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return nil
}

func runCoachAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.coach()
	if err != nil {
		return err
	}
	reply := c.Ask(cmd.Context(), a.journal.Chronological(), strings.Join(args, " "))
	if reply.Text == "" {
		return reply.Err
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return nil
}

func runCoachChat(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.coach()
	if err != nil {
		return err
	}

	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".tradezilla_chat_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("start prompt: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	fmt.Fprintln(out, "Ask about your recent trades. Type exit or press Ctrl-D to leave.")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		q := strings.TrimSpace(line)
		switch q {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		// trades are re-read each turn so edits made elsewhere show up
		reply := c.Ask(cmd.Context(), a.journal.Chronological(), q)
		fmt.Fprintf(out, "coach> %s\n", reply.Text)
	}
}
