package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"smsblast/pkg/domain"
	"strings"

	"github.com/samber/lo"
)

// Roster is the normalized recipient list extracted from an input file:
// unique valid numbers in first-occurrence order, plus the lines that failed
// validation.
type Roster struct {
	// Recipients are the unique valid numbers, in first-occurrence order.
	Recipients []domain.Recipient
	// Skipped are the non-blank lines rejected by validation, in input order.
	Skipped []string
}

// Parse reads candidate numbers from r, one per line, and produces a Roster.
// Blank lines are ignored; every other line is trimmed, validated, and either
// collected or recorded as skipped. Duplicates among valid numbers collapse
// to a single recipient.
func Parse(r io.Reader) (Roster, error) {
	var roster Roster
	var valid []domain.Recipient

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !ValidNumber(line) {
			roster.Skipped = append(roster.Skipped, line)

			continue
		}
		valid = append(valid, domain.Recipient(line))
	}
	if err := sc.Err(); err != nil {
		return Roster{}, fmt.Errorf("could not read input: %w", err)
	}

	roster.Recipients = lo.Uniq(valid)

	return roster, nil
}

// LoadRecipients opens the numbers file at path and parses it into a Roster.
// A missing or unreadable file is returned as an error so the caller can
// abort before any sends are attempted.
func LoadRecipients(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Roster{}, fmt.Errorf("could not open numbers file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Parse(f)
}
