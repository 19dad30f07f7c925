package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/new-item-notifier/internal/api/client"
)

const timeLayout = "2006-01-02 15:04"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printTriggerResult(w io.Writer, res *apiclient.TriggerResult) error {
	tw := newTabWriter(w)
	tw.writef("Status:\t%s\n", res.Status)
	tw.writef("Started:\t%s\n", res.StartedAt.Format(timeLayout))
	tw.writef("New items:\t%d\n", res.NewItems)
	if res.RunID != "" {
		tw.writef("Run ID:\t%s\n", res.RunID)
	}
	if err := tw.finish(); err != nil {
		return err
	}
	if len(res.Entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printEntries(w, res.Entries)
}

func printRunsTable(w io.Writer, runs []apiclient.RunLog) error {
	tw := newTabWriter(w)
	tw.writef("KEY\tCREATED\tPOSTED\tFAILED\tRUN ID\n")
	for i := range runs {
		posted, failed := countOutcomes(runs[i].Entries)
		tw.writef("%s\t%s\t%d\t%d\t%s\n",
			runs[i].Key,
			runs[i].CreatedAt.Format(timeLayout),
			posted,
			failed,
			orDash(runs[i].RunID),
		)
	}
	return tw.finish()
}

func printRunDetail(w io.Writer, l *apiclient.RunLog) error {
	tw := newTabWriter(w)
	tw.writef("Key:\t%s\n", l.Key)
	tw.writef("Created:\t%s\n", l.CreatedAt.Format(timeLayout))
	tw.writef("Run ID:\t%s\n", orDash(l.RunID))
	if err := tw.finish(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printEntries(w, l.Entries)
}

func printEntries(w io.Writer, entries []apiclient.RunEntry) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT\tNOTIFICATION\tERROR\n")
	for _, e := range entries {
		id := "-"
		if e.NotificationID != nil {
			id = *e.NotificationID
		}
		tw.writef("%d\t%s\t%s\n", e.ProductID, id, truncate(e.Error, 60))
	}
	return tw.finish()
}

func printSnapshot(w io.Writer, s *apiclient.Snapshot) error {
	tw := newTabWriter(w)
	tw.writef("Updated:\t%s\n", s.UpdatedAt.Format(timeLayout))
	tw.writef("Known items:\t%d\n", len(s.ProductIDs))
	if len(s.ProductIDs) > 0 {
		tw.writef("Newest:\t%d\n", s.ProductIDs[0])
	}
	return tw.finish()
}

func printCursor(w io.Writer, c *apiclient.Cursor) error {
	tw := newTabWriter(w)
	tw.writef("Updated:\t%s\n", c.UpdatedAt.Format(timeLayout))
	tw.writef("Latest item:\t%d\n", c.LatestProductID)
	return tw.finish()
}

func countOutcomes(entries []apiclient.RunEntry) (posted, failed int) {
	for _, e := range entries {
		if e.NotificationID != nil {
			posted++
		} else {
			failed++
		}
	}
	return posted, failed
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
