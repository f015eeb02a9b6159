// Package platforms maintains the registry of gaming platforms
// referenced by the user directory.
package platforms

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"infwebnet-backend/lib/users"
)

// ErrRegistryNotFound is returned by Load when the registry artifact
// does not exist. Recovery (alternate path, re-discovery, abort) is
// the caller's call.
var ErrRegistryNotFound = errors.New("platform registry not found")

// Discover collects the distinct platform names across every user's
// game claims. Only complete (game, platform) pairs count; users
// without claims contribute nothing.
func Discover(userList []users.User) map[string]struct{} {
	set := map[string]struct{}{}
	for _, u := range userList {
		for _, c := range u.Claims {
			if c.Game == "" || c.Platform == "" {
				continue
			}
			set[c.Platform] = struct{}{}
		}
	}
	return set
}

// Save writes the platform set to a line-delimited text artifact, one
// platform per line. Order is not significant; it is sorted only to
// keep the artifact stable across runs.
func Save(path string, set map[string]struct{}) error {
	names := make([]string, 0, len(set))
	for p := range set {
		names = append(names, p)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, p := range names {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	err := os.WriteFile(path, []byte(b.String()), 0644)
	if err != nil {
		return fmt.Errorf("write platform registry: %w", err)
	}
	return nil
}

// Load reads the registry artifact back, trimming whitespace and
// skipping blank lines.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRegistryNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}
