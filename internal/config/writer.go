package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// WriteConfigOrdered writes the configuration to disk with deterministic
// section ordering so diffs between saves stay readable.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	sorted := sortTOMLSections(buf.String())

	if err := os.WriteFile(path, []byte(sorted), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Match section headers with optional leading whitespace (for indented sub-tables)
var sectionHeaderPattern = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)

// sortTOMLSections orders sections alphabetically by their full dotted path.
// Sub-tables sort directly after their parent because the parent path is a
// prefix of theirs.
func sortTOMLSections(content string) string {
	lines := strings.Split(content, "\n")

	type section struct {
		header string
		lines  []string
	}

	var preamble []string // lines before the first section
	var sections []section
	current := -1

	for _, line := range lines {
		if match := sectionHeaderPattern.FindStringSubmatch(line); match != nil {
			sections = append(sections, section{header: match[1], lines: []string{line}})
			current = len(sections) - 1
			continue
		}
		if current == -1 {
			preamble = append(preamble, line)
			continue
		}
		sections[current].lines = append(sections[current].lines, line)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].header < sections[j].header
	})

	out := make([]string, 0, len(lines))
	out = append(out, preamble...)
	for _, s := range sections {
		out = append(out, s.lines...)
	}
	return strings.Join(out, "\n")
}
