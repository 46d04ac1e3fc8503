// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/store"
)

// Sentinel errors for profile selection.
var (
	ErrNoProfiles         = errors.New("no profiles to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive profile selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectStore prompts the user to choose from a list of profiles.
//
// Returns:
//   - ErrNoProfiles if the list is empty
//   - The profile if only one exists (auto-selects without prompting)
//   - The selected profile based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectStore(stores []*store.Store) (*store.Store, error) {
	if len(stores) == 0 {
		return nil, ErrNoProfiles
	}

	// Auto-select if only one profile
	if len(stores) == 1 {
		return stores[0], nil
	}

	fmt.Fprintf(s.writer, "Profiles:\n")
	for i, st := range stores {
		marker := " "
		if st.Using {
			marker = "*"
		}
		fmt.Fprintf(s.writer, "  [%d]%s %s (%s)\n", i+1, marker, st.Title, st.ID)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return stores[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(stores) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(stores))
	}

	return stores[selection-1], nil
}

// FuzzySelectStore opens a fuzzy finder over the profiles. Used by
// `profile use` when run on a TTY without arguments.
func FuzzySelectStore(stores []*store.Store) (*store.Store, error) {
	if len(stores) == 0 {
		return nil, ErrNoProfiles
	}

	idx, err := fuzzyfinder.Find(stores, func(i int) string {
		marker := "  "
		if stores[i].Using {
			marker = "* "
		}
		return marker + stores[i].Title
	})
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "fuzzy selection")
	}

	return stores[idx], nil
}
