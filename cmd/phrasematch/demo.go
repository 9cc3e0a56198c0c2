package main

import (
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/phrasematch/internal/utils"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
)

// demoEntries is the sample pattern set loaded by -demo.
var demoEntries = map[int]string{
	100: "sum",
	101: "summer",
	102: "summer fun",
	103: "summer fun",
	104: "summer  fun",
	105: "fun is very",
	106: "very good",
	107: "gold",
}

const (
	demoText    = "Summer fun is very very     good"
	demoPartial = "summer "
)

// runDemo loads the sample set and prints one exact and one partial query
// with their timings.
func runDemo(m textmatch.IMatcher, w io.Writer) error {
	start := time.Now()
	added := m.AddEntries(demoEntries)
	fmt.Fprintf(w, "AddEntries: %d entries in %v\n", added, time.Since(start))

	start = time.Now()
	matches, err := m.MatchText(demoText)
	if err != nil {
		return fmt.Errorf("matching %q: %w", demoText, err)
	}
	fmt.Fprintf(w, "MatchText(%q): %v\n", demoText, time.Since(start))
	for _, match := range matches {
		fmt.Fprintf(w, "  %d, %d, %s\n", match.Start, match.End, utils.FormatKeys(match.Keys))
	}

	start = time.Now()
	partials := m.PartialMatch(demoPartial)
	fmt.Fprintf(w, "PartialMatch(%q): %v\n", demoPartial, time.Since(start))
	for _, p := range partials {
		fmt.Fprintf(w, "  (%d, %s, %d)\n", p.MatchedChars, p.Entry, p.CompletingChars)
	}
	return nil
}
