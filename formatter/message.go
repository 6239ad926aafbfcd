package formatter

import (
	"fmt"
	"strings"

	tt "github.com/gnolang/depwarn/internal/types"
)

// messagePart renders one fragment of a deprecation line when its field is set.
type messagePart struct {
	present func(tt.DeprecationEvent) bool
	render  func(tt.DeprecationEvent) string
}

// messageParts is evaluated in order: method, alternate method, call site.
var messageParts = []messagePart{
	{
		present: func(ev tt.DeprecationEvent) bool { return ev.Method != "" },
		render:  func(ev tt.DeprecationEvent) string { return fmt.Sprintf("%s is deprecated.", ev.Method) },
	},
	{
		present: func(ev tt.DeprecationEvent) bool { return ev.AlternateMethod != "" },
		render:  func(ev tt.DeprecationEvent) string { return fmt.Sprintf("Use %s instead.", ev.AlternateMethod) },
	},
	{
		present: func(ev tt.DeprecationEvent) bool { return ev.CalledFrom != "" },
		render:  func(ev tt.DeprecationEvent) string { return fmt.Sprintf("Called from %s.", ev.CalledFrom) },
	},
}

// FormatDeprecation renders an event into a single line without a trailing newline.
// A non-empty Message wins over every other field.
func FormatDeprecation(ev tt.DeprecationEvent) string {
	if ev.Message != "" {
		return ev.Message
	}

	parts := make([]string, 0, len(messageParts))
	for _, p := range messageParts {
		if p.present(ev) {
			parts = append(parts, p.render(ev))
		}
	}
	return strings.Join(parts, " ")
}

func summaryLine(count int, path string) string {
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d deprecation%s logged to %s", count, plural, path)
}
