package output

import (
	"fmt"
	"strings"
	"time"

	"waynotes/internal/notes"
)

const (
	// widgetCycleSeconds is how long each pending note stays the headline.
	widgetCycleSeconds = 10

	// widgetMaxLen is the headline length limit in runes.
	widgetMaxLen = 40
)

// Widget is the JSON object consumed by the status bar. Text cycles
// through the pending notes; Tooltip lists all of them with the current
// one marked.
type Widget struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	Alt     string `json:"alt"`
}

// BuildWidget builds the bar widget payload for the given pending notes.
// The headline rotates on a fixed clock so repeated invocations cycle
// through the list.
func BuildWidget(undone []notes.Note, at time.Time) Widget {
	if len(undone) == 0 {
		return Widget{
			Text:    "no tasks",
			Tooltip: "no pending tasks",
			Class:   "empty",
			Alt:     "empty",
		}
	}

	current := int(at.Unix()/widgetCycleSeconds) % len(undone)

	plural := ""
	if len(undone) > 1 {
		plural = "s"
	}
	lines := []string{fmt.Sprintf("%d pending task%s:", len(undone), plural), ""}
	for i, n := range undone {
		prefix := "  "
		if i == current {
			prefix = "> "
		}
		lines = append(lines, prefix+escapeMarkup(n.Text))
	}

	return Widget{
		Text:    escapeMarkup(truncate(undone[current].Text, widgetMaxLen)),
		Tooltip: strings.Join(lines, "\n"),
		Class:   "active",
		Alt:     "active",
	}
}

// escapeMarkup escapes the characters the bar interprets as markup.
func escapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// truncate shortens s to max runes, ellipsized.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
