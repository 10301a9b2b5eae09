// Package errors formats parser diagnostics as caret-marked source
// frames for terminal output.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"solparse/grammar"
)

// Level is the severity of a reported diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
)

// Reporter renders diagnostics against one file's source text.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatSyntax renders one collected syntax error.
func (r *Reporter) FormatSyntax(err grammar.SyntaxError) string {
	return r.Format(Error, err.Message, err.Line, err.Column, 1)
}

// FormatAll renders every collected syntax error in order.
func (r *Reporter) FormatAll(errs []grammar.SyntaxError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(r.FormatSyntax(err))
	}
	return b.String()
}

// Format renders one caret-marked frame. Column follows the scanner's
// zero-based convention; length widens the marker under the offending
// region.
func (r *Reporter) Format(level Level, message string, line, column, length int) string {
	var b strings.Builder

	levelColor := r.levelColor(level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(level)), message))

	width := lineNumberWidth(line)
	pad := strings.Repeat(" ", width)
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", pad, dim("-->"), r.filename, line, column))
	b.WriteString(fmt.Sprintf("%s %s\n", pad, dim("│")))

	if line >= 1 && line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, line)), dim("│"), r.lines[line-1]))
		b.WriteString(fmt.Sprintf("%s %s %s\n", pad, dim("│"), r.marker(levelColor, column, length)))
	}

	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	if level == Warning {
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

// marker places the caret run under the zero-based column.
func (r *Reporter) marker(paint func(...interface{}) string, column, length int) string {
	if length < 1 {
		length = 1
	}
	if column < 0 {
		column = 0
	}
	return strings.Repeat(" ", column) + paint(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}
