package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// nameFilter matches product names containing the search text, ignoring case.
type nameFilter struct {
	folded string
	fold   cases.Caser
}

func newNameFilter(text string) nameFilter {
	fold := cases.Fold()
	return nameFilter{folded: fold.String(text), fold: fold}
}

func (f nameFilter) matches(name string) bool {
	if f.folded == "" {
		return true
	}
	return strings.Contains(f.fold.String(name), f.folded)
}
