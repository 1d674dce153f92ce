// Package output records every user-facing line the dispatcher prints.
//
// A Sink writes each record to its writer and keeps a plain-text copy in an
// ordered Log so callers can assert on exactly what a run printed without
// capturing the real output stream.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Record holds the values passed to one Print call.
type Record []string

// Log is the ordered list of records printed during one run.
type Log []Record

// Segment is a value with terminal styling. Only the plain text is recorded.
type Segment struct {
	Text   string
	Colors text.Colors
}

func (s Segment) String() string { return s.Text }

// Bold renders value in bold on a terminal.
func Bold(value string) Segment {
	return Segment{Text: value, Colors: text.Colors{text.Bold}}
}

// Underline renders value underlined on a terminal.
func Underline(value string) Segment {
	return Segment{Text: value, Colors: text.Colors{text.Underline}}
}

// Highlight renders value on a bright yellow background on a terminal.
func Highlight(value string) Segment {
	return Segment{Text: value, Colors: text.Colors{text.FgBlack, text.BgHiYellow}}
}

// Styled is a string assembled from plain text and segments, such as a help
// block with bold headings.
type Styled []any

// Sink fans records out to a writer and an in-memory log.
type Sink struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	log      Log
}

// NewSink builds a sink writing to out. Styling is applied only when out is a
// terminal.
func NewSink(out io.Writer) *Sink {
	if out == nil {
		out = io.Discard
	}
	return &Sink{out: out, colorize: shouldColorize(out)}
}

// Print records values as one entry and writes them space-separated on one
// line. Values may be strings, Segments, Styled, or anything fmt can print.
func (s *Sink) Print(values ...any) error {
	rec := make(Record, 0, len(values))
	rendered := make([]string, 0, len(values))
	for _, v := range values {
		rec = append(rec, plain(v))
		rendered = append(rendered, s.render(v))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, rec)
	_, err := fmt.Fprintln(s.out, strings.Join(rendered, " "))
	return err
}

// Log returns a copy of the records printed so far.
func (s *Sink) Log() Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Log, len(s.log))
	for i, rec := range s.log {
		out[i] = append(Record(nil), rec...)
	}
	return out
}

func (s *Sink) render(v any) string {
	switch value := v.(type) {
	case Segment:
		if s.colorize && len(value.Colors) > 0 {
			return value.Colors.Sprint(value.Text)
		}
		return value.Text
	case Styled:
		var b strings.Builder
		for _, part := range value {
			b.WriteString(s.render(part))
		}
		return b.String()
	default:
		return plain(v)
	}
}

func plain(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case Segment:
		return value.Text
	case Styled:
		var b strings.Builder
		for _, part := range value {
			b.WriteString(plain(part))
		}
		return b.String()
	default:
		return fmt.Sprint(v)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
