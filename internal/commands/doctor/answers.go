package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/internal/core/validate"
)

// AnswersCheck loads every answer file in the answers directory and looks
// for temp files left behind by interrupted saves.
type AnswersCheck struct {
	backend answer.Backend
	dir     string
	fix     bool
}

// NewAnswersCheck creates a new answer file check.
// If fix is true, leftover temp files are deleted.
func NewAnswersCheck(backend answer.Backend, dir string, fix bool) *AnswersCheck {
	return &AnswersCheck{
		backend: backend,
		dir:     dir,
		fix:     fix,
	}
}

func (c *AnswersCheck) Name() string {
	return "Answer Files"
}

func (c *AnswersCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		result.add("Answers directory", StatusPass, "no answers stored yet")
		return result
	}

	fsys := os.DirFS(c.dir)

	files, err := doublestar.Glob(fsys, "*.json")
	if err != nil {
		result.add("Read answers directory", StatusFail, err.Error())
		return result
	}

	readable := 0
	for _, file := range files {
		name := strings.TrimSuffix(file, ".json")
		if validate.StoreName(name) != nil {
			continue
		}

		if _, err := c.backend.Load(filepath.Join(c.dir, file)); err != nil {
			result.add(name, StatusFail, err.Error())
			continue
		}
		readable++
	}

	if readable > 0 || len(files) == 0 {
		result.add("Readable", StatusPass, fmt.Sprintf("%d answer file(s)", readable))
	}

	leftovers, err := doublestar.Glob(fsys, "*.json.tmp")
	if err != nil {
		result.add("Read answers directory", StatusFail, err.Error())
		return result
	}

	for _, file := range leftovers {
		path := filepath.Join(c.dir, file)

		if !c.fix {
			result.Items = append(result.Items, CheckItem{
				Label:   file,
				Status:  StatusWarn,
				Detail:  "leftover temp file from an interrupted save",
				Fixable: true,
			})
			continue
		}

		if err := os.Remove(path); err != nil {
			result.add(file, StatusFail, fmt.Sprintf("failed to delete: %v", err))
		} else {
			result.add(file, StatusPass, "deleted leftover temp file")
		}
	}

	return result
}
