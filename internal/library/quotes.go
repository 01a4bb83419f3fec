// Package library loads and searches reference content.
package library

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadQuotes reads one quote per line from the provided file path.
func LoadQuotes(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only quote file.
			_ = cerr
		}
	}()

	var quotes []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quotes = append(quotes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote file is empty")
	}
	return quotes, nil
}
