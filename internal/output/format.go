// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"waynotes/internal/engine"
	"waynotes/internal/notes"
)

// FormatNote formats a note line for the list command.
// Format: "{ID:>4}  [{mark}] {TEXT}\n" where mark is "x" for done notes.
func FormatNote(w io.Writer, n notes.Note) {
	mark := " "
	if n.Done {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", n.ID, mark, normalizeText(n.Text))
}

// PullSummary renders the one-line pull result.
func PullSummary(s engine.Summary) string {
	return fmt.Sprintf("pulled: %d created, %d updated, %d deleted locally",
		s.LocalCreated, s.LocalUpdated, s.LocalDeleted)
}

// PushSummary renders the one-line push result.
func PushSummary(s engine.Summary) string {
	return fmt.Sprintf("pushed: %d created, %d updated, %d deleted remotely",
		s.RemoteCreated, s.RemoteUpdated, s.RemoteDeleted)
}

// SyncSummary renders the one-line bidirectional sync result.
func SyncSummary(s engine.Summary) string {
	return fmt.Sprintf("synced: remote %d created, %d updated, %d deleted; local %d created, %d updated, %d deleted",
		s.RemoteCreated, s.RemoteUpdated, s.RemoteDeleted,
		s.LocalCreated, s.LocalUpdated, s.LocalDeleted)
}

// StatusLine renders the read-only status report.
func StatusLine(r engine.Report) string {
	return fmt.Sprintf("last pull: %s; last push: %s; %d notes mapped across %d lists",
		formatWhen(r.LastPullAt), formatWhen(r.LastPushAt), r.Mappings, r.Lists)
}

func formatWhen(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.RFC3339)
}

// normalizeText normalizes note text for single-line display.
// Empty or whitespace-only text becomes "(empty)"; newlines become spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(empty)"
	}
	return text
}
