// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// StoreName validates an answer name. The name becomes a file name, so it must
// be non-empty after trimming and must not contain path separators or be a
// relative path element.
func StoreName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name %q is not a valid file name", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", name)
	}
	return nil
}
