package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
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

// Entry is one line of zap console output split into its columns.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  string
}

// Parse splits a console-encoded line ("time\tLEVEL\tmessage\t{fields}").
// Lines that do not follow the layout come back as a bare message.
func Parse(line string) Entry {
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Entry{Message: line}
	}
	e := Entry{Time: parts[0], Level: parts[1], Message: parts[2]}
	if len(parts) == 4 {
		e.Fields = parts[3]
	}
	return e
}

func isLevel(s string) bool {
	switch s {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}
