package store

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Patricia is a WordStore on top of go-patricia. Items are int counts.
type Patricia struct {
	trie     *patricia.Trie
	distinct int
	total    int
}

// NewPatricia creates an empty patricia store.
func NewPatricia() *Patricia {
	return &Patricia{trie: patricia.NewTrie()}
}

// Insert bumps the count stored under word. Empty words are ignored.
func (p *Patricia) Insert(word string) {
	if word == "" {
		log.Debug("Ignoring empty word insert")
		return
	}

	key := patricia.Prefix(word)
	count, _ := p.trie.Get(key).(int)
	if count == 0 {
		p.distinct++
	}
	p.trie.Set(key, count+1)
	p.total++
}

// Collect visits every key under prefix and returns it minus the prefix.
func (p *Patricia) Collect(prefix string) map[string]int {
	words := make(map[string]int)

	visit := func(key patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, key)
			return nil
		}
		words[string(key)[len(prefix):]] = count
		return nil
	}

	var err error
	if prefix == "" {
		err = p.trie.Visit(visit)
	} else {
		err = p.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting patricia subtree: %v", err)
	}
	return words
}

// Len returns the number of distinct words.
func (p *Patricia) Len() int {
	return p.distinct
}

// Total returns the number of inserts, duplicates included.
func (p *Patricia) Total() int {
	return p.total
}
