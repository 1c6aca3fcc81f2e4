// Package store holds the word stores behind the completion provider: a rune-keyed prefix trie and a patricia-backed alternative.
package store

// WordStore defines the storage contract used by the suggest provider.
// Ranking and tokenization live in the caller; a store only counts words
// and enumerates the ones under a prefix.
type WordStore interface {
	// Insert records one more occurrence of word
	Insert(word string)

	// Collect returns every stored word starting with prefix, keyed by the
	// remainder after the prefix, with its occurrence count.
	// An unknown prefix yields an empty map.
	Collect(prefix string) map[string]int
}

// Sizer is implemented by stores that can report their vocabulary size.
type Sizer interface {
	Len() int
	Total() int
}

// Kind names a WordStore implementation in config files and flags.
type Kind string

const (
	KindTrie     Kind = "trie"
	KindPatricia Kind = "patricia"
)

// New returns an empty store of the given kind, falling back to the trie
// for unknown kinds.
func New(kind Kind) WordStore {
	switch kind {
	case KindPatricia:
		return NewPatricia()
	default:
		return NewTrie()
	}
}
