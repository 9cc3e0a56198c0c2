package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// EntryReader yields pattern entries one by one.
// It returns io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (key int, text string, err error)
}

// textReader reads "key<TAB or blanks>text" lines. Blank lines and lines
// starting with '#' are skipped.
type textReader struct {
	name    string
	scanner *bufio.Scanner
	line    int
}

// NewTextReader reads the plain text format from r. name is used in errors.
func NewTextReader(name string, r io.Reader) EntryReader {
	return &textReader{name: name, scanner: bufio.NewScanner(r)}
}

func (tr *textReader) Next() (int, string, error) {
	for tr.scanner.Scan() {
		tr.line++
		line := strings.TrimSpace(tr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		field, text, found := strings.Cut(line, "\t")
		if !found {
			field, text, found = strings.Cut(line, " ")
		}
		if !found {
			return 0, "", fmt.Errorf("%s:%d: missing text after key %q", tr.name, tr.line, field)
		}
		key, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return 0, "", fmt.Errorf("%s:%d: invalid key: %w", tr.name, tr.line, err)
		}
		return key, text, nil
	}
	if err := tr.scanner.Err(); err != nil {
		return 0, "", fmt.Errorf("%s: %w", tr.name, err)
	}
	return 0, "", io.EOF
}

// record is one entry of the structured formats.
type record struct {
	Key  *int   `toml:"key" yaml:"key"`
	Text string `toml:"text" yaml:"text"`
}

type tomlFile struct {
	Entry []record `toml:"entry"`
}

type yamlFile struct {
	Entries []record `yaml:"entries"`
}

// recordReader walks already decoded records.
type recordReader struct {
	name    string
	records []record
	pos     int
}

func (rr *recordReader) Next() (int, string, error) {
	if rr.pos >= len(rr.records) {
		return 0, "", io.EOF
	}
	rec := rr.records[rr.pos]
	rr.pos++
	if rec.Key == nil {
		return 0, "", fmt.Errorf("%s: entry %d has no key", rr.name, rr.pos)
	}
	return *rec.Key, rec.Text, nil
}

// NewTOMLReader decodes "[[entry]]" tables from r.
func NewTOMLReader(name string, r io.Reader) (EntryReader, error) {
	var f tomlFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &recordReader{name: name, records: f.Entry}, nil
}

// NewYAMLReader decodes an "entries" list from r.
func NewYAMLReader(name string, r io.Reader) (EntryReader, error) {
	var f yamlFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &recordReader{name: name, records: f.Entries}, nil
}
