package docprettify

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// unifiedDiff renders the change from before to after in unified format.
func unifiedDiff(fromFile, toFile, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("rendering diff: %w", err)
	}
	return diff, nil
}
