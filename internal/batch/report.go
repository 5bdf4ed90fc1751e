package batch

import (
	"fmt"
	"io"
	"smsblast/pkg/domain"
	"time"

	"github.com/olekukonko/tablewriter"
)

// newTable returns a borderless left-aligned table writer for report output.
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	return table
}

// WriteReport renders the batch outcome to w: one row per recipient with the
// provider acknowledgement or failure detail, the skipped invalid lines, and
// a closing summary so operators can tell scheduled, failed, and skipped
// numbers apart when correcting the input list.
func WriteReport(w io.Writer, b *domain.Batch) {
	fmt.Fprintf(w, "Batch %s, delivery at %s\n\n", b.ID, b.SendAt.Format(time.RFC3339))

	if len(b.Results) > 0 {
		table := newTable(w, []string{"Number", "Outcome", "Detail"})
		for _, res := range b.Results {
			detail := res.Err
			if res.Outcome == domain.SendOutcomeScheduled {
				detail = fmt.Sprintf("sid=%s status=%s", res.SID, res.Status)
			}
			table.Append([]string{string(res.Recipient), string(res.Outcome), detail})
		}
		table.Render()
		fmt.Fprintln(w)
	}

	writeSkipped(w, b.Skipped)

	fmt.Fprintf(w, "Complete: %d/%d messages scheduled, %d failed, %d skipped as invalid\n",
		b.Scheduled(), len(b.Results), b.Failed(), len(b.Skipped))
}

// WriteRoster renders a dry-run view of the parsed recipient list without
// dispatching anything.
func WriteRoster(w io.Writer, roster Roster) {
	if len(roster.Recipients) > 0 {
		table := newTable(w, []string{"Number"})
		for _, to := range roster.Recipients {
			table.Append([]string{string(to)})
		}
		table.Render()
		fmt.Fprintln(w)
	}

	writeSkipped(w, roster.Skipped)

	fmt.Fprintf(w, "Loaded %d unique valid numbers, %d lines skipped as invalid\n",
		len(roster.Recipients), len(roster.Skipped))
}

func writeSkipped(w io.Writer, skipped []string) {
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintln(w, "Skipped invalid lines:")
	for _, line := range skipped {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}
