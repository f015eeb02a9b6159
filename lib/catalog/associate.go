package catalog

import (
	"infwebnet-backend/lib/textutil"
	"infwebnet-backend/lib/users"

	"github.com/antzucaro/matchr"
)

// Associate matches each user's claimed (game, platform) pairs against
// the catalog. Both sides of the comparison are case-insensitive. A
// user with no matching claims gets an empty list, never an error.
//
// The scan is quadratic over users and catalog entries; catalogs here
// are small enough that indexing would not pay for itself.
func Associate(userList []users.User, entries []Entry) map[string][]Association {
	out := make(map[string][]Association, len(userList))

	for _, u := range userList {
		matches := []Association{}
		for _, claim := range u.Claims {
			for _, entry := range entries {
				if !textutil.EqualFold(entry.Platform, claim.Platform) {
					continue
				}
				for _, game := range entry.Games {
					if textutil.EqualFold(game.Name, claim.Game) {
						matches = append(matches, Association{
							UserID:   u.ID,
							Game:     claim.Game,
							Platform: claim.Platform,
						})
					}
				}
			}
		}
		out[u.ID] = matches
	}

	return out
}

// SuggestTitle returns the catalog title closest to the claimed game
// name within one entry, for hinting at near-misses. The second return
// is the Jaro-Winkler similarity, zero when the entry has no games.
func SuggestTitle(claim string, entry Entry) (string, float64) {
	var best string
	var bestScore float64
	for _, game := range entry.Games {
		score := matchr.JaroWinkler(
			textutil.Normalize(claim),
			textutil.Normalize(game.Name),
			false,
		)
		if score > bestScore {
			bestScore = score
			best = game.Name
		}
	}
	return best, bestScore
}
