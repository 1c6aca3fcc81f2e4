package server

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/bastiangx/wordlearn/pkg/config"
	"github.com/bastiangx/wordlearn/pkg/store"
	"github.com/bastiangx/wordlearn/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// run feeds reqs to a fresh server and returns a decoder over its output,
// positioned after the ready banner.
func run(t *testing.T, cfg *config.Config, reqs ...any) *msgpack.Decoder {
	t.Helper()
	return runWith(t, suggest.NewProvider(), cfg, reqs...)
}

func runWith(t *testing.T, provider suggest.ICompleter, cfg *config.Config, reqs ...any) *msgpack.Decoder {
	t.Helper()

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	srv := NewServer(provider, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("first message status = %q, expected ready", ready.Status)
	}
	return dec
}

func decode[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %T: %v", v, err)
	}
	return v
}

const passage = "The third thing that I need to tell you is that this thing does not think thoroughly."

func TestTrainAndComplete(t *testing.T) {
	dec := run(t, nil,
		Request{ID: "t1", Action: ActionTrain, Text: passage},
		Request{ID: "c1", Action: ActionComplete, Prefix: "Th", Limit: 3},
		Request{ID: "c2", Action: ActionComplete, Prefix: "zz"},
	)

	train := decode[TrainResponse](t, dec)
	if train.ID != "t1" || train.Status != "ok" || train.Words == nil || *train.Words != 15 || train.Tokens != 17 {
		t.Errorf("unexpected train response: %+v", train)
	}

	comp := decode[CompletionResponse](t, dec)
	expected := []CompletionSuggestion{
		{Word: "that", Confidence: 2, Rank: 1},
		{Word: "thing", Confidence: 2, Rank: 2},
		{Word: "the", Confidence: 1, Rank: 3},
	}
	if comp.ID != "c1" || comp.Count != 3 || !reflect.DeepEqual(comp.Suggestions, expected) {
		t.Errorf("unexpected completion response: %+v", comp)
	}

	empty := decode[CompletionResponse](t, dec)
	if empty.ID != "c2" || empty.Count != 0 || len(empty.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %+v", empty)
	}
}

func TestCompleteLimits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 2
	cfg.Server.MaxPrefix = 4

	dec := run(t, cfg,
		Request{ID: "t", Action: ActionTrain, Text: "a b c d e"},
		Request{ID: "all", Action: ActionComplete, Prefix: "", Limit: 10},
		Request{ID: "long", Action: ActionComplete, Prefix: "abcde"},
	)
	decode[TrainResponse](t, dec)

	all := decode[CompletionResponse](t, dec)
	if all.Count != 2 || all.Suggestions[0].Word != "a" || all.Suggestions[1].Word != "b" {
		t.Errorf("empty prefix should return top words clamped to max_limit, got %+v", all)
	}

	long := decode[CompletionError](t, dec)
	if long.ID != "long" || long.Code != 400 {
		t.Errorf("expected 400 for long prefix, got %+v", long)
	}
}

func TestStatsHealthUnknown(t *testing.T) {
	dec := run(t, nil,
		Request{ID: "t", Action: ActionTrain, Text: "net net"},
		Request{ID: "s", Action: ActionStats},
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "u", Action: "fly"},
	)
	decode[TrainResponse](t, dec)

	stats := decode[StatusResponse](t, dec)
	expected := map[string]int{"passages": 1, "trainedTokens": 2, "distinctWords": 1}
	if stats.ID != "s" || !reflect.DeepEqual(stats.Stats, expected) {
		t.Errorf("unexpected stats response: %+v", stats)
	}

	health := decode[StatusResponse](t, dec)
	if health.ID != "h" || health.Status != "ok" {
		t.Errorf("unexpected health response: %+v", health)
	}

	unknown := decode[CompletionError](t, dec)
	if unknown.ID != "u" || unknown.Code != 400 || unknown.Error != "unknown action: fly" {
		t.Errorf("unexpected error response: %+v", unknown)
	}
}

func TestStartDecodeError(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1})
	var out bytes.Buffer
	srv := NewServer(suggest.NewProvider(), nil, in, &out)
	if err := srv.Start(); err == nil {
		t.Error("expected decode error for reserved msgpack byte")
	}
}

func TestCompleteDefaultLimitClamped(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 2

	dec := run(t, cfg,
		Request{ID: "t", Action: ActionTrain, Text: "a b c d e"},
		Request{ID: "nolimit", Action: ActionComplete},
	)
	decode[TrainResponse](t, dec)

	got := decode[CompletionResponse](t, dec)
	if got.ID != "nolimit" || got.Count != 2 || len(got.Suggestions) != 2 {
		t.Errorf("default limit should be clamped to max_limit 2, got %+v", got)
	}

	// a zero default must not turn into "no cap"
	cfg.CLI.DefaultLimit = 0
	dec = run(t, cfg,
		Request{ID: "t", Action: ActionTrain, Text: "a b c d e"},
		Request{ID: "zero", Action: ActionComplete},
	)
	decode[TrainResponse](t, dec)
	if got := decode[CompletionResponse](t, dec); got.Count != 2 {
		t.Errorf("zero default_limit returned %d suggestions, max_limit is 2", got.Count)
	}
}

func TestMalformedRequestKeepsServing(t *testing.T) {
	dec := run(t, nil,
		map[string]any{"id": "bad", "a": "complete", "p": "th", "l": "five"},
		Request{ID: "h", Action: ActionHealth},
	)

	bad := decode[CompletionError](t, dec)
	if bad.ID != "bad" || bad.Code != 400 {
		t.Errorf("expected 400 for mistyped request, got %+v", bad)
	}

	health := decode[StatusResponse](t, dec)
	if health.ID != "h" || health.Status != "ok" {
		t.Errorf("request after a bad one was not served: %+v", health)
	}
}

func TestPrefixLengthCountsCharacters(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPrefix = 4

	dec := run(t, cfg,
		Request{ID: "t", Action: ActionTrain, Text: "éééé"},
		Request{ID: "fits", Action: ActionComplete, Prefix: "éééé"},
		Request{ID: "long", Action: ActionComplete, Prefix: "ééééé"},
	)
	decode[TrainResponse](t, dec)

	fits := decode[CompletionResponse](t, dec)
	if fits.ID != "fits" || fits.Count != 1 {
		t.Errorf("4-rune prefix should be accepted at max_prefix 4, got %+v", fits)
	}
	if long := decode[CompletionError](t, dec); long.ID != "long" || long.Code != 400 {
		t.Errorf("5-rune prefix should be rejected, got %+v", long)
	}
}

// unsizedStore hides the Sizer methods of the wrapped store
type unsizedStore struct {
	store.WordStore
}

func TestTrainWithoutSizer(t *testing.T) {
	provider := suggest.NewProvider(suggest.WithStore(unsizedStore{store.NewTrie()}))
	dec := runWith(t, provider, nil,
		Request{ID: "t", Action: ActionTrain, Text: "net net"},
	)

	train := decode[TrainResponse](t, dec)
	if train.Words != nil {
		t.Errorf("words should be absent for an unsized store, got %d", *train.Words)
	}
	if train.Tokens != 2 {
		t.Errorf("tokens = %d, expected 2", train.Tokens)
	}
}
