package config

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks file access and question definitions.
// Returns criterio.FieldErrors when any field is invalid.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrors

	errs = append(errs, c.validateFileAccess(configPath)...)
	errs = append(errs, c.validateHistory()...)
	errs = append(errs, c.validateQuestions()...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Warnings returns non-fatal issues found in the configuration.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if !c.History.Enabled && c.History.Keep != answer.DefaultKeep {
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "history.keep",
			Message:  "keep is set but history is disabled",
		})
	}

	for _, name := range c.questionNames() {
		q := c.Questions[name]
		if len(q.Options) > 0 && q.Default == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Questions",
				Item:     name,
				Message:  "select question has no default; the first option is preselected",
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and the store directories.
func (c *Config) validateFileAccess(configPath string) criterio.FieldErrors {
	var errs criterio.FieldErrors

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = append(errs, criterio.FieldErrors{{
				Field: "config",
				Err:   fmt.Errorf("%s is a directory, not a file", configPath),
			}}...)
		} else if err != nil && !os.IsNotExist(err) {
			errs = append(errs, criterio.FieldErrors{{
				Field: "config",
				Err:   fmt.Errorf("cannot access %s: %v", configPath, err),
			}}...)
		}
	}

	errs = append(errs, checkDir("cwd", c.Cwd)...)
	if c.History.Enabled {
		errs = append(errs, checkDir("history.dir", c.History.Dir)...)
	}

	return errs
}

// checkDir reports a field error if dir exists and is not a directory.
// A missing directory is fine; it is created on first write.
func checkDir(field, dir string) criterio.FieldErrors {
	abs, err := answer.ExpandHome(dir)
	if err != nil {
		return criterio.FieldErrors{{Field: field, Err: err}}
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return criterio.FieldErrors{{Field: field, Err: fmt.Errorf("%s exists but is not a directory", abs)}}
	case err != nil && !os.IsNotExist(err):
		return criterio.FieldErrors{{Field: field, Err: fmt.Errorf("cannot access %s: %v", abs, err)}}
	}
	return nil
}

func (c *Config) validateHistory() criterio.FieldErrors {
	if c.History.Keep < 1 {
		return criterio.FieldErrors{{Field: "history.keep", Err: fmt.Errorf("must be at least 1")}}
	}
	return nil
}

func (c *Config) validateQuestions() criterio.FieldErrors {
	var errs criterio.FieldErrors

	for _, name := range c.questionNames() {
		q := c.Questions[name]
		field := "questions." + name

		if err := validate.StoreName(name); err != nil {
			errs = append(errs, criterio.FieldErrors{{Field: field, Err: err}}...)
			continue
		}

		if q.Default != "" && len(q.Options) > 0 && !slices.Contains(q.Options, q.Default) {
			errs = append(errs, criterio.FieldErrors{{
				Field: field + ".default",
				Err:   fmt.Errorf("default %q is not one of the options", q.Default),
			}}...)
		}
	}

	return errs
}

func (c *Config) questionNames() []string {
	names := make([]string, 0, len(c.Questions))
	for k := range c.Questions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
