// Package suggest is the core: it trains word counts from free text and ranks prefix completions out of a store.
package suggest

// ICompleter defines the interface the CLI and IPC server drive
type ICompleter interface {
	// Train tokenizes passage and counts every word in it
	Train(passage string)

	// Query returns every trained word starting with fragment, ranked
	Query(fragment string) []Candidate

	// Complete is Query capped at limit results (limit <= 0 means no cap)
	Complete(fragment string, limit int) []Candidate

	// Stats returns counters about the trained vocabulary
	Stats() map[string]int
}
