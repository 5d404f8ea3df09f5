package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item for a labelled value.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

var titleCaser = cases.Title(language.English)

// Title title-cases s, e.g. "possible errors" -> "Possible Errors".
func Title(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}
