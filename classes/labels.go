package classes

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels builds a Registry from a plain text labels file containing one
// class name per line.  Blank lines are skipped and classes are given
// palette colors
func LoadLabels(file string) (*Registry, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var defs []ClassDefinition

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		defs = append(defs, ClassDefinition{Name: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return New(defs)
}
