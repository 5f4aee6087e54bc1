package docfill

import (
	"encoding/json"
	"fmt"
	"os"
)

// Token maps one literal marker string to its replacement value. An empty
// Value is a valid replacement; an empty Key never matches.
type Token struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TokenMap is an ordered token list. Order is priority: when two tokens
// could match at the same offset, the earlier entry wins.
type TokenMap []Token

// tokenFile is the on-disk shape accepted by LoadTokenMap.
type tokenFile struct {
	Keywords []Token `json:"keywords"`
}

// LoadTokenMap reads a token map from a JSON file. Two shapes are accepted:
// a bare array of {key, value} objects, or an object with a "keywords"
// array wrapping them.
func LoadTokenMap(path string) (TokenMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("load tokens", path, err)
	}

	var tokens TokenMap
	if err := json.Unmarshal(data, &tokens); err == nil {
		return tokens, nil
	}

	var wrapped tokenFile
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, NewDocumentError("load tokens", path, fmt.Errorf("neither a token array nor a keywords object: %w", err))
	}
	return wrapped.Keywords, nil
}

// Keys returns the marker strings in map order.
func (tm TokenMap) Keys() []string {
	keys := make([]string, len(tm))
	for i, t := range tm {
		keys[i] = t.Key
	}
	return keys
}

// Get returns the replacement for a marker, or "" and false when the map
// does not carry it.
func (tm TokenMap) Get(key string) (string, bool) {
	for _, t := range tm {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}
