// Package prompt asks the user for answer values and parses raw input.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/core/config"
	"github.com/hay-kot/answer/internal/styles"
)

// Ask runs a huh form for q and returns the entered value. The stored current
// value, when it is a string, takes precedence over the configured default.
func Ask(q config.Question, current any) (string, error) {
	value := initialValue(q, current)

	var field huh.Field
	if len(q.Options) > 0 {
		field = huh.NewSelect[string]().
			Title(q.Message).
			Options(options(q)...).
			Value(&value)
	} else {
		input := huh.NewInput().
			Title(q.Message).
			Value(&value).
			Validate(requiredValidator)
		if q.Default != "" {
			input.Placeholder(q.Default)
		}
		field = input
	}

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(styles.FormTheme())
	if err := form.Run(); err != nil {
		return "", err
	}

	return value, nil
}

// initialValue picks the value the field starts with.
func initialValue(q config.Question, current any) string {
	if s, ok := current.(string); ok && s != "" {
		return s
	}
	return q.Default
}

func options(q config.Question) []huh.Option[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, o := range q.Options {
		opts[i] = huh.NewOption(o, o)
	}
	return opts
}

// requiredValidator rejects blank input.
func requiredValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

// ParseValue interprets raw CLI input as a JSON value. Input that is not
// valid JSON is stored as a plain string. Numbers stay json.Number so they
// are stored exactly as typed.
func ParseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	var v any
	if err := answer.Decode([]byte(trimmed), &v); err != nil {
		return raw
	}
	return v
}

// FormatValue renders a value on a single line for listings.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
