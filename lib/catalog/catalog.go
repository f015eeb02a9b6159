// Package catalog holds the extracted game catalog model, its export
// artifact, and the user/catalog association engine.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one column of a source table row.
type Field struct {
	Key   string
	Value string
}

// Attributes maps a source table's column headers to the cell text of
// one row, preserving the table's column order. It serializes as a
// plain JSON object.
type Attributes []Field

func (a Attributes) Get(key string) (string, bool) {
	for _, f := range a {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	var out Attributes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected string key, got %v", keyTok)
		}
		var value string
		err = dec.Decode(&value)
		if err != nil {
			return err
		}
		out = append(out, Field{Key: key, Value: value})
	}

	*a = out
	return nil
}

// Game is one row of a source table, resolved to a display name plus
// the full attribute mapping.
type Game struct {
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
}

// Entry is the set of games extracted from one platform's reference
// page. Platform uniqueness across entries is not enforced.
type Entry struct {
	Platform string `json:"platform"`
	Games    []Game `json:"games"`
}

// Association is a verified link between a user's claimed game and a
// matching catalog record.
type Association struct {
	UserID   string `json:"user_id"`
	Game     string `json:"game_name"`
	Platform string `json:"platform"`
}
