// Package cli runs an interactive shell over a phrase matcher for
// debugging and trying out pattern sets.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/phrasematch/internal/logger"
	"github.com/bastiangx/phrasematch/internal/utils"
	"github.com/bastiangx/phrasematch/pkg/config"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/log"
)

const helpText = `commands:
  add <key> <text>   store text under key
  rm <key>...        remove keys
  match <text>       whole-word matches in text
  partial <text>     phrases that could complete text
  list [prefix]      stored entries, optionally by prefix
  stats              entry count and digest
  help               this message`

// InputHandler reads commands line by line and runs them against the
// matcher.
type InputHandler struct {
	matcher      textmatch.IMatcher
	showTiming   bool
	color        bool
	out          *log.Logger
	requestCount int
}

// NewInputHandler creates a handler printing to stderr.
func NewInputHandler(m textmatch.IMatcher, cfg config.CliConfig) *InputHandler {
	return &InputHandler{
		matcher:    m,
		showTiming: cfg.ShowTiming,
		color:      cfg.Color,
		out:        logger.NewTo(os.Stderr, ""),
	}
}

// SetOutput redirects what the handler prints.
func (h *InputHandler) SetOutput(w io.Writer) {
	h.out = logger.NewTo(w, "")
}

// Start runs the loop on stdin.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run reads commands from r until it is exhausted.
func (h *InputHandler) Run(r io.Reader) error {
	h.out.Print("phrasematch CLI [BETA]")
	h.out.Print("type help for the list of commands (Ctrl+C to exit)")
	reader := bufio.NewReader(r)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			h.handleInput(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	cmd, rest := utils.SplitCommand(line)
	start := time.Now()

	switch cmd {
	case "add":
		h.add(rest)
	case "rm", "remove":
		h.remove(rest)
	case "match":
		h.match(rest)
	case "partial":
		h.partial(rest)
	case "list", "ls":
		h.list(rest)
	case "stats":
		h.out.Printf("%s entries, digest %016x", utils.FormatWithCommas(h.matcher.Len()), h.matcher.Digest())
	case "help", "?":
		h.out.Print(helpText)
		return
	default:
		h.out.Errorf("Unknown command %q, try help", cmd)
		return
	}

	if h.showTiming {
		h.out.Printf("took [ %v ]", time.Since(start))
	}
}

func (h *InputHandler) add(rest string) {
	field, text, _ := strings.Cut(rest, " ")
	key, err := strconv.Atoi(field)
	if err != nil || strings.TrimSpace(text) == "" {
		h.out.Error("usage: add <key> <text>")
		return
	}
	if !h.matcher.AddEntry(key, text) {
		h.out.Warnf("Entry %d is empty after normalization, ignored", key)
		return
	}
	stored, _ := h.matcher.Entry(key)
	h.out.Printf("stored %d -> %s", key, h.paint(stored))
}

func (h *InputHandler) remove(rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		h.out.Error("usage: rm <key>...")
		return
	}
	keys := make([]int, 0, len(fields))
	for _, f := range fields {
		key, err := strconv.Atoi(f)
		if err != nil {
			h.out.Errorf("Invalid key %q", f)
			return
		}
		keys = append(keys, key)
	}
	h.out.Printf("removed %d of %d", h.matcher.RemoveEntries(keys), len(keys))
}

func (h *InputHandler) match(text string) {
	if text == "" {
		h.out.Error("usage: match <text>")
		return
	}
	matches, err := h.matcher.MatchText(text)
	if err != nil {
		h.out.Errorf("Match failed: %v", err)
		return
	}
	if len(matches) == 0 {
		h.out.Warnf("No matches in '%s'", text)
		return
	}
	runes := []rune(text)
	h.out.Printf("Found %d matches:", len(matches))
	for i, m := range matches {
		span := string(runes[m.Start : m.End+1])
		h.out.Printf("%2d. %d, %d  %-30s %s", i+1, m.Start, m.End, h.paint(span), utils.FormatKeys(m.Keys))
	}
}

func (h *InputHandler) partial(text string) {
	if strings.TrimSpace(text) == "" {
		h.out.Error("usage: partial <text>")
		return
	}
	partials := h.matcher.PartialMatch(text)
	if len(partials) == 0 {
		h.out.Warnf("No completions for '%s'", text)
		return
	}
	h.out.Printf("Found %d completions:", len(partials))
	for i, p := range partials {
		h.out.Printf("%2d. (%d, %s, %d)", i+1, p.MatchedChars, h.paint(p.Entry), p.CompletingChars)
	}
}

func (h *InputHandler) list(prefix string) {
	entries := h.matcher.EntriesWithPrefix(prefix)
	if len(entries) == 0 {
		h.out.Warn("No entries")
		return
	}
	for _, e := range entries {
		h.out.Printf("%8d  %s", e.Key, h.paint(e.Text))
	}
}

func (h *InputHandler) paint(s string) string {
	if !h.color {
		return s
	}
	return fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
}
