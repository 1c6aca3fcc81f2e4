package utils

import (
	"fmt"
	"strings"
)

// PunctuationMode controls how punctuation is handled when splitting text
type PunctuationMode int

const (
	// StripPunctuation deletes punctuation, merging "don't" into "dont"
	StripPunctuation PunctuationMode = iota
	// SpacePunctuation turns punctuation into whitespace, splitting "don't" into "don" and "t"
	SpacePunctuation
)

func (m PunctuationMode) String() string {
	switch m {
	case SpacePunctuation:
		return "space"
	default:
		return "strip"
	}
}

// ParsePunctuationMode parses the config/flag spelling of a mode
func ParsePunctuationMode(s string) (PunctuationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strip":
		return StripPunctuation, nil
	case "space":
		return SpacePunctuation, nil
	}
	return StripPunctuation, fmt.Errorf("unknown punctuation mode %q (expected strip or space)", s)
}

// IsPunctuation reports whether r is an ASCII punctuation character
func IsPunctuation(r rune) bool {
	return strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}

// Tokenize splits a passage into lowercase words.
// Punctuation is handled per mode before splitting on whitespace;
// tokens left empty by stripping are dropped by the split.
func Tokenize(passage string, mode PunctuationMode) []string {
	cleaned := strings.Map(func(r rune) rune {
		if !IsPunctuation(r) {
			return r
		}
		if mode == SpacePunctuation {
			return ' '
		}
		return -1
	}, passage)

	fields := strings.Fields(cleaned)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
