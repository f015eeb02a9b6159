// Package users is the read-only view of the externally-owned user
// directory. The directory file itself is produced and maintained by
// the registration tooling, this package only decodes it.
package users

import (
	"encoding/json"
	"fmt"
	"os"
)

// Claim is a single (game, platform) pair a user says they play.
type Claim struct {
	Game     string
	Platform string
}

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Claims    []Claim
}

// the directory file carries loose shapes: ids are numbers or hex
// strings, claim lists are either pair-arrays or objects, and absent
// data shows up as the "Não Informado" filler string.
type rawUser struct {
	ID        json.RawMessage `json:"id"`
	FirstName string          `json:"nome"`
	LastName  string          `json:"sobrenome"`
	Email     string          `json:"email"`
	Games     json.RawMessage `json:"jogos"`
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

func decodeClaims(raw json.RawMessage) []Claim {
	if len(raw) == 0 {
		return nil
	}

	var pairs [][]string
	if err := json.Unmarshal(raw, &pairs); err == nil {
		var claims []Claim
		for _, p := range pairs {
			// a pair with fewer than two elements carries no platform
			// and is dropped
			if len(p) < 2 {
				continue
			}
			claims = append(claims, Claim{Game: p[0], Platform: p[1]})
		}
		return claims
	}

	var objs []struct {
		Game     string `json:"nome"`
		Platform string `json:"plataforma"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil {
		var claims []Claim
		for _, o := range objs {
			if o.Game == "" || o.Platform == "" {
				continue
			}
			claims = append(claims, Claim{Game: o.Game, Platform: o.Platform})
		}
		return claims
	}

	// "Não Informado" or any other filler decodes to no claims
	return nil
}

// Load reads the user directory from a JSON file.
func Load(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user directory: %w", err)
	}
	return Decode(data)
}

// Decode parses the user directory from its JSON form.
func Decode(data []byte) ([]User, error) {
	var raw []rawUser
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode user directory: %w", err)
	}

	out := make([]User, len(raw))
	for i, r := range raw {
		out[i] = User{
			ID:        decodeID(r.ID),
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Claims:    decodeClaims(r.Games),
		}
	}
	return out, nil
}
