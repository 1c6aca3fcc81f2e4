package suggest

import (
	"strings"
	"sync"

	"github.com/bastiangx/wordlearn/internal/utils"
	"github.com/bastiangx/wordlearn/pkg/store"
	"github.com/charmbracelet/log"
)

// Provider trains a WordStore from text passages and answers prefix queries.
type Provider struct {
	store    store.WordStore
	punct    utils.PunctuationMode
	passages int
	tokens   int
	mu       sync.RWMutex
}

// Option configures a Provider
type Option func(*Provider)

// WithStore swaps the default trie for another WordStore
func WithStore(s store.WordStore) Option {
	return func(p *Provider) {
		if s != nil {
			p.store = s
		}
	}
}

// WithPunctuation sets how punctuation is treated when tokenizing
func WithPunctuation(mode utils.PunctuationMode) Option {
	return func(p *Provider) {
		p.punct = mode
	}
}

// NewProvider creates a provider with an empty trie that strips punctuation
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		store: store.NewTrie(),
		punct: utils.StripPunctuation,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Train adds one occurrence of every token in passage.
// Training the same passage twice doubles the affected counts.
func (p *Provider) Train(passage string) {
	words := utils.Tokenize(passage, p.punct)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, w := range words {
		p.store.Insert(w)
	}
	p.passages++
	p.tokens += len(words)

	log.Debugf("Trained %d tokens (mode=%s)", len(words), p.punct)
}

// Query lowercases fragment and returns every trained word under it,
// sorted by confidence then alphabetically. An empty fragment matches
// every trained word; an unknown one yields an empty slice.
func (p *Provider) Query(fragment string) []Candidate {
	fragment = strings.ToLower(fragment)

	p.mu.RLock()
	suffixes := p.store.Collect(fragment)
	p.mu.RUnlock()

	candidates := make([]Candidate, 0, len(suffixes))
	for suffix, count := range suffixes {
		candidates = append(candidates, Candidate{
			Word:       fragment + suffix,
			Confidence: count,
		})
	}
	SortCandidates(candidates)
	return candidates
}

// Complete returns at most limit candidates for fragment
func (p *Provider) Complete(fragment string, limit int) []Candidate {
	candidates := p.Query(fragment)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Stats returns passage and token counters, plus distinctWords when the store can count them
func (p *Provider) Stats() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := map[string]int{
		"passages":      p.passages,
		"trainedTokens": p.tokens,
	}
	if sizer, ok := p.store.(store.Sizer); ok {
		stats["distinctWords"] = sizer.Len()
	}
	return stats
}
