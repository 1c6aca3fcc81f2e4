package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordlearn/pkg/suggest"
	"github.com/charmbracelet/log"
)

func runLines(t *testing.T, p *suggest.Provider, input string) string {
	t.Helper()
	prev := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(prev)

	h := NewInputHandler(p, 1, 10, 3)
	var out bytes.Buffer
	h.SetOutput(&out)
	if err := h.Start(strings.NewReader(input)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return out.String()
}

func TestTrainThenQuery(t *testing.T) {
	p := suggest.NewProvider()
	out := runLines(t, p, ":train the third thing that I need\n\nth\n:stats")

	if got := p.Query("th"); len(got) != 4 {
		t.Fatalf("provider was not trained, Query(th) = %v", got)
	}
	if !strings.Contains(out, "Found 3 suggestions for prefix 'th'") {
		t.Errorf("missing suggestion header in output:\n%s", out)
	}
	for _, w := range []string{"that", "the", "thing"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	if strings.Contains(out, "third") {
		t.Errorf("limit of 3 not applied:\n%s", out)
	}
	if !strings.Contains(out, "trainedTokens") {
		t.Errorf("stats not printed:\n%s", out)
	}
}

func TestQueryBounds(t *testing.T) {
	p := suggest.NewProvider()
	p.Train("extraordinarily")
	out := runLines(t, p, "extraordinar\nzz\n")

	if !strings.Contains(out, "Prefix too long") {
		t.Errorf("expected long prefix rejection:\n%s", out)
	}
	if !strings.Contains(out, "No suggestions found for prefix: 'zz'") {
		t.Errorf("expected no-suggestion warning:\n%s", out)
	}
}

func TestQueryBoundsCountCharacters(t *testing.T) {
	p := suggest.NewProvider()
	p.Train("éééééééééé")
	out := runLines(t, p, "éééééééééé\n")

	if strings.Contains(out, "Prefix too long") {
		t.Errorf("10-rune prefix rejected at max length 10:\n%s", out)
	}
	if !strings.Contains(out, "Found 1 suggestions") {
		t.Errorf("expected the trained word back:\n%s", out)
	}
}
