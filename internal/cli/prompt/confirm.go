package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ccmate/ccmate/internal/errors"
)

// Confirm asks a yes/no question and returns the answer.
// Empty input returns defaultYes. EOF counts as a "no".
func (s *Selector) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(s.writer, "%s [%s]: ", question, hint)

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading confirmation")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
