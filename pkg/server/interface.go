/*
Package server implements msgpack IPC for training and word completion.

The server reads a stream of msgpack-encoded requests from an io.Reader
(stdin in the binary) and writes one msgpack response per request to an
io.Writer (stdout). Requests are handled one at a time, in order.

On start the server announces itself:

	{"status": "ready"}

Every request carries an ID and an action:

	{"id": "r1", "a": "complete", "p": "th", "l": 5}
	{"id": "r2", "a": "train", "x": "the third thing that I need"}
	{"id": "r3", "a": "stats"}
	{"id": "r4", "a": "health"}

Completion responses rank candidates by confidence:

	{"id": "r1", "s": [{"w": "that", "f": 2, "r": 1}, {"w": "thing", "f": 2, "r": 2}], "c": 2, "t": 37}

t is the lookup time in microseconds. An empty prefix is valid and
returns the most frequent trained words up to the limit.

Failed requests get a CompletionError with an HTTP-like code. A message
that is valid msgpack but does not fit the Request shape is answered with
a 400 and the server keeps reading; only a broken stream stops it.
Prefix lengths are counted in characters (runes).
*/
package server

const (
	ActionComplete = "complete"
	ActionTrain    = "train"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Request is the envelope for every client message
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Text   string `msgpack:"x,omitempty"`
}

// CompletionSuggestion - one ranked candidate
type CompletionSuggestion struct {
	Word       string `msgpack:"w"`
	Confidence int    `msgpack:"f"`
	Rank       uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// TrainResponse reports vocabulary size after a train request.
// Words is left out when the store cannot count distinct words.
type TrainResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Words  *int   `msgpack:"words,omitempty"`
	Tokens int    `msgpack:"tokens"`
}

// StatusResponse answers health/stats requests and the ready banner
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
