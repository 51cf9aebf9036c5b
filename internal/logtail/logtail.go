package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/five82/paintbox/internal/logging"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]any
	Raw     string
	// Structured is false for lines that were not JSON log records.
	Structured bool
}

const zapTimeLayout = "2006-01-02T15:04:05.000Z0700"

// Parse decodes a JSON log line. Anything else comes back with Structured
// unset and the line kept in Raw.
func Parse(line string) Entry {
	e := Entry{Raw: line}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil || rec == nil {
		return e
	}
	msg, ok := rec[logging.MessageKey].(string)
	if !ok {
		return e
	}
	e.Structured = true
	e.Message = msg
	e.Level, _ = rec[logging.LevelKey].(string)
	if ts, ok := rec[logging.TimeKey].(string); ok {
		if parsed, err := time.Parse(zapTimeLayout, ts); err == nil {
			e.Time = parsed
		}
	}
	for _, key := range []string{logging.MessageKey, logging.LevelKey, logging.TimeKey, logging.CallerKey, "stacktrace"} {
		delete(rec, key)
	}
	if len(rec) > 0 {
		e.Fields = rec
	}
	return e
}

// AtLeast reports whether the entry is at or above min. Unstructured lines
// and unknown levels always pass.
func (e Entry) AtLeast(min zapcore.Level) bool {
	if !e.Structured {
		return true
	}
	lvl, err := zapcore.ParseLevel(e.Level)
	if err != nil {
		return true
	}
	return lvl >= min
}

// Format renders the entry as a single plain line:
//
//	2024-05-02 09:00:00 INFO  import applied  source=paste strategy=merge
func Format(e Entry) string {
	if !e.Structured {
		return e.Raw
	}
	ts, level, fields := parts(e)
	line := fmt.Sprintf("%s %-5s %s", ts, level, e.Message)
	if fields != "" {
		line += "  " + fields
	}
	return line
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Colorize renders the entry like Format with terminal colors. Lipgloss drops
// the colors when the output is not a terminal.
func Colorize(e Entry) string {
	if !e.Structured {
		return e.Raw
	}
	ts, level, fields := parts(e)
	style, ok := levelStyle[level]
	if !ok {
		style = lipgloss.NewStyle().Bold(true)
	}
	line := timeStyle.Render(ts) + " " + style.Render(fmt.Sprintf("%-5s", level)) + " " + e.Message
	if fields != "" {
		line += "  " + fieldStyle.Render(fields)
	}
	return line
}

// FormatLines parses and renders lines at or above min.
func FormatLines(lines []string, min zapcore.Level, color bool) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if !e.AtLeast(min) {
			continue
		}
		if color {
			out = append(out, Colorize(e))
		} else {
			out = append(out, Format(e))
		}
	}
	return out
}

func parts(e Entry) (ts, level, fields string) {
	ts = "-------------------"
	if !e.Time.IsZero() {
		ts = e.Time.Format("2006-01-02 15:04:05")
	}
	level = strings.ToUpper(e.Level)
	if level == "" {
		level = "?"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return ts, level, strings.Join(pairs, " ")
}
