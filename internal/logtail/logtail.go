package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
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

// Highlighter styles the key=value records written by slog's text handler.
type Highlighter struct {
	Key    lipgloss.Style
	Time   lipgloss.Style
	Levels map[string]lipgloss.Style
}

var fieldPattern = regexp.MustCompile(`([A-Za-z_][\w.]*)=("(?:[^"\\]|\\.)*"|\S*)`)

// ColorizeLine styles one record. Lines that are not key=value records are
// returned unchanged.
func (h Highlighter) ColorizeLine(line string) string {
	matches := fieldPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		key := line[m[2]:m[3]]
		value := line[m[4]:m[5]]
		sb.WriteString(line[last:m[0]])
		sb.WriteString(h.Key.Render(key + "="))
		switch key {
		case "time":
			sb.WriteString(h.Time.Render(value))
		case "level":
			if style, ok := h.Levels[strings.ToUpper(value)]; ok {
				sb.WriteString(style.Render(value))
			} else {
				sb.WriteString(value)
			}
		default:
			sb.WriteString(value)
		}
		last = m[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// ColorizeLines styles every line.
func (h Highlighter) ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = h.ColorizeLine(line)
	}
	return out
}
