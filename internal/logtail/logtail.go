// Package logtail reads the end of marquee's log file for the diagnostics overlay.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Filter decides whether a log line is kept. A nil Filter keeps every line.
type Filter func(line string) bool

// Problems keeps warning and error lines written by charmbracelet/log.
func Problems(line string) bool {
	return strings.Contains(line, " WARN ") || strings.Contains(line, " ERRO ")
}

// Read returns at most maxLines matching lines from the end of the file at
// path, oldest first. A missing file yields no lines and no error.
func Read(path string, maxLines int, keep Filter) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		ring[idx] = line
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
