/*
Package dictionary loads pattern sets from files and keeps a matcher in
step with them.

A pattern set maps integer keys to phrases. Three file formats are read,
picked by extension:

	# patterns.txt
	100	sum
	101	summer fun

	# patterns.toml
	[[entry]]
	key = 100
	text = "sum"

	# patterns.yaml
	entries:
	  - key: 100
	    text: sum

Apply reconciles a matcher with a set, and Watcher re-applies the file
whenever it changes on disk.
*/
package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/log"
)

// Diff reports what Apply changed.
type Diff struct {
	Added     []int
	Updated   []int
	Removed   []int
	Unchanged int
	// Ignored keys had text that normalizes to nothing.
	Ignored []int
}

// Empty reports whether Apply changed nothing.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

func (d Diff) String() string {
	return fmt.Sprintf("added=%d updated=%d removed=%d unchanged=%d ignored=%d",
		len(d.Added), len(d.Updated), len(d.Removed), d.Unchanged, len(d.Ignored))
}

// ReadAll drains r into a set. A key seen twice keeps its last text.
func ReadAll(r EntryReader) (map[int]string, error) {
	set := make(map[int]string)
	for {
		key, text, err := r.Next()
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		if prev, dup := set[key]; dup {
			log.Debugf("Key %d repeated, %q replaces %q", key, text, prev)
		}
		set[key] = text
	}
}

// NewReader opens the reader matching format over r.
func NewReader(format FileFormat, name string, r io.Reader) (EntryReader, error) {
	switch format {
	case FormatText:
		return NewTextReader(name, r), nil
	case FormatTOML:
		return NewTOMLReader(name, r)
	case FormatYAML:
		return NewYAMLReader(name, r)
	default:
		return nil, fmt.Errorf("unsupported pattern format for %s", name)
	}
}

// Load reads the pattern file at path, format chosen by extension.
func Load(path string) (map[int]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern file %s: %w", path, err)
	}
	defer file.Close()

	reader, err := NewReader(format, path, file)
	if err != nil {
		return nil, err
	}
	set, err := ReadAll(reader)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d entries from %s (%s)", len(set), path, format)
	return set, nil
}

// Apply makes m hold exactly set: keys missing from set are removed, new
// and changed keys are added. Texts are compared in normalized form. A key
// whose text is blank keeps what m held for it.
func Apply(m textmatch.IMatcher, set map[int]string) Diff {
	var d Diff
	for _, e := range m.Entries() {
		if _, keep := set[e.Key]; !keep {
			m.RemoveEntry(e.Key)
			d.Removed = append(d.Removed, e.Key)
		}
	}

	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	for _, key := range keys {
		text := textmatch.Normalize(set[key])
		prev, stored := m.Entry(key)
		switch {
		case text == "":
			d.Ignored = append(d.Ignored, key)
		case stored && prev == text:
			d.Unchanged++
		case m.AddEntry(key, text):
			if stored {
				d.Updated = append(d.Updated, key)
			} else {
				d.Added = append(d.Added, key)
			}
		}
	}
	if len(d.Ignored) > 0 {
		log.Warnf("Ignored %d blank entries: %v", len(d.Ignored), d.Ignored)
	}
	return d
}

// LoadInto loads path and applies it to m.
func LoadInto(m textmatch.IMatcher, path string) (Diff, error) {
	set, err := Load(path)
	if err != nil {
		return Diff{}, err
	}
	return Apply(m, set), nil
}
