package script

import (
	"fmt"
	"os"
)

// WriteFile writes the rendered script to FileName in the current
// working directory, truncating any previous content. The write is a
// single whole-file write; on failure the run fails as a whole.
func WriteFile(rendered string) error {
	if err := os.WriteFile(FileName, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}
