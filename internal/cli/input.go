// Package cli handles cmd line input for training and querying interactively, mostly for testing and DBG
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordlearn/internal/logger"
	"github.com/bastiangx/wordlearn/internal/utils"
	"github.com/bastiangx/wordlearn/pkg/suggest"
	"github.com/charmbracelet/log"
)

const (
	trainCmd = ":train"
	statsCmd = ":stats"
)

// InputHandler reads lines, trains on ":train <text>" lines and
// prints ranked suggestions for everything else.
type InputHandler struct {
	completer       suggest.ICompleter
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		completer:       completer,
		out:             logger.New(""),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// SetOutput redirects the handler's printed output
func (h *InputHandler) SetOutput(w io.Writer) {
	h.out = logger.NewWithWriter(w, "")
}

// Start loops over lines from r until EOF.
func (h *InputHandler) Start(r io.Reader) error {
	h.out.Print("wordlearn CLI")
	h.out.Print("type a prefix and press Enter, ':train <text>' to learn, ':stats' for counters (Ctrl+C to exit):")

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	switch {
	case line == statsCmd:
		h.printStats()
	case line == trainCmd || strings.HasPrefix(line, trainCmd+" "):
		text := strings.TrimSpace(strings.TrimPrefix(line, trainCmd))
		h.completer.Train(text)
		h.out.Printf("Trained on %d chars", utf8.RuneCountInString(text))
	default:
		h.handleQuery(line)
	}
}

func (h *InputHandler) handleQuery(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	start := time.Now()
	candidates := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(candidates) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(candidates), prefix)
	for i, c := range candidates {
		word := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
		h.out.Printf("%2d. %-40s (conf: %8s)", i+1, word, utils.FormatWithCommas(c.Confidence))
	}
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.out.Printf("%-14s %s", k, utils.FormatWithCommas(stats[k]))
	}
}
