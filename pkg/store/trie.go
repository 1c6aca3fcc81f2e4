package store

import "github.com/charmbracelet/log"

type node struct {
	char     rune
	count    int
	children map[rune]*node
}

func newNode(char rune) *node {
	return &node{char: char}
}

func (n *node) child(r rune) (*node, bool) {
	if n.children == nil {
		return nil, false
	}
	c, ok := n.children[r]
	return c, ok
}

// Trie is a word frequency prefix tree keyed by rune.
// The root never terminates a word.
type Trie struct {
	root     *node
	distinct int
	total    int
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newNode(0)}
}

// Insert walks word rune by rune, creating missing nodes, and bumps the
// count of the terminal node. Empty words are ignored.
func (t *Trie) Insert(word string) {
	if word == "" {
		log.Debug("Ignoring empty word insert")
		return
	}

	n := t.root
	for _, r := range word {
		next, ok := n.child(r)
		if !ok {
			if n.children == nil {
				n.children = make(map[rune]*node)
			}
			next = newNode(r)
			n.children[r] = next
		}
		n = next
	}

	if n.count == 0 {
		t.distinct++
	}
	n.count++
	t.total++
}

// find returns the node reached by following prefix from the root.
func (t *Trie) find(prefix string) *node {
	n := t.root
	for _, r := range prefix {
		next, ok := n.child(r)
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

type frame struct {
	n     *node
	depth int
}

// Collect walks the subtree under prefix with an explicit stack, keying
// each word by its runes below the prefix node. When a frame at depth d
// is popped, path[:d-1] holds its ancestry.
func (t *Trie) Collect(prefix string) map[string]int {
	words := make(map[string]int)

	start := t.find(prefix)
	if start == nil {
		return words
	}

	var path []rune
	stack := []frame{{n: start}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > 0 {
			path = append(path[:top.depth-1], top.n.char)
		}
		if top.n.count > 0 {
			words[string(path)] = top.n.count
		}
		for _, c := range top.n.children {
			stack = append(stack, frame{n: c, depth: top.depth + 1})
		}
	}
	return words
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.distinct
}

// Total returns the number of inserts, duplicates included.
func (t *Trie) Total() int {
	return t.total
}
