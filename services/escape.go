package services

import "strings"

// latexReplacer maps LaTeX metacharacters to literal text. Backslash must be
// handled before anything else so the backslashes introduced by the other
// substitutions are never re-escaped; strings.NewReplacer does a single
// left-to-right pass over the input, which gives exactly that behavior.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLatex converts free-form user text into LaTeX-literal text. Total:
// never fails, empty input yields empty output.
func EscapeLatex(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// EscapeReferences escapes only & so that formatting commands the author
// embedded in the reference list (\textit and friends) pass through intact.
func EscapeReferences(text string) string {
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(text, `&`, `\&`)
}
