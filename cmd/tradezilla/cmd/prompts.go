package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/rustyeddy/tradezilla/journal"
)

// askEntry walks the trade form, offering the current values of e as
// defaults.
func askEntry(e *journal.Entry) error {
	symbol := &survey.Input{
		Message: "Symbol:",
		Help:    "Instrument traded, e.g. BTCUSDT",
		Default: e.Symbol,
		Suggest: suggestSymbols,
	}
	if err := survey.AskOne(symbol, &e.Symbol, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("symbol input failed: %w", err)
	}

	var dir string
	direction := &survey.Select{
		Message: "Direction:",
		Options: []string{string(journal.Long), string(journal.Short)},
		Default: string(e.Direction),
	}
	if err := survey.AskOne(direction, &dir); err != nil {
		return fmt.Errorf("direction selection failed: %w", err)
	}
	e.Direction = journal.Direction(dir)

	for _, q := range []struct {
		label string
		dst   *float64
	}{
		{"Entry price:", &e.EntryPrice},
		{"Exit price:", &e.ExitPrice},
		{"Size:", &e.Size},
	} {
		if err := askAmount(q.label, q.dst); err != nil {
			return err
		}
	}

	date := &survey.Input{
		Message: "Date (YYYY-MM-DD):",
		Default: e.Date,
	}
	err := survey.AskOne(date, &e.Date, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		if _, err := time.Parse(journal.DateLayout, strings.TrimSpace(s)); err != nil {
			return errors.New("date must be YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("date input failed: %w", err)
	}

	strategy := &survey.Select{
		Message: "Strategy:",
		Options: journal.Strategies,
		Default: strategyDefault(e.Strategy),
	}
	if err := survey.AskOne(strategy, &e.Strategy); err != nil {
		return fmt.Errorf("strategy selection failed: %w", err)
	}

	var emotion string
	emotionPrompt := &survey.Input{
		Message: "Emotional state (1-10):",
		Help:    "1 is calm and disciplined, 10 is tilted",
		Default: strconv.Itoa(e.EmotionScale),
	}
	err = survey.AskOne(emotionPrompt, &emotion, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > 10 {
			return errors.New("enter a whole number from 1 to 10")
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("emotion input failed: %w", err)
	}
	e.EmotionScale, _ = strconv.Atoi(strings.TrimSpace(emotion))

	notes := &survey.Multiline{
		Message: "Notes:",
		Default: e.Notes,
	}
	if err := survey.AskOne(notes, &e.Notes); err != nil {
		return fmt.Errorf("notes input failed: %w", err)
	}
	return nil
}

func askAmount(label string, dst *float64) error {
	var s string
	def := ""
	if *dst > 0 {
		def = strconv.FormatFloat(*dst, 'f', -1, 64)
	}
	prompt := &survey.Input{Message: label, Default: def}
	err := survey.AskOne(prompt, &s, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		v, err := journal.ParseAmount(str)
		if err != nil || v <= 0 {
			return errors.New("enter a positive number")
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("%s input failed: %w", strings.TrimSuffix(label, ":"), err)
	}
	v, err := journal.ParseAmount(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func suggestSymbols(toComplete string) []string {
	prefix := strings.ToUpper(strings.TrimSpace(toComplete))
	var out []string
	for _, s := range journal.Symbols {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// strategyDefault keeps survey from rejecting a stored strategy that is no
// longer in the list.
func strategyDefault(s string) string {
	for _, opt := range journal.Strategies {
		if opt == s {
			return s
		}
	}
	return journal.Strategies[0]
}

func confirm(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}
