package platforms

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"infwebnet-backend/lib/testutil"
	"infwebnet-backend/lib/users"

	"github.com/stretchr/testify/require"
)

func TestDiscoverSaveLoad(t *testing.T) {
	userList := []users.User{
		{ID: "1", Claims: []users.Claim{
			{Game: "Chrono Trigger", Platform: "SNES"},
			{Game: "Zelda", Platform: "Switch"},
		}},
		{ID: "2", Claims: []users.Claim{
			{Game: "Mario Kart", Platform: "Switch"},
		}},
		{ID: "3"},
	}

	set := Discover(userList)
	require.Len(t, set, 2)
	require.Contains(t, set, "SNES")
	require.Contains(t, set, "Switch")

	path := filepath.Join(t.TempDir(), "plataformas.txt")
	require.NoError(t, Save(path, set))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"SNES", "Switch"}, loaded)
}

func TestDiscoverSaveLoadRandomized(t *testing.T) {
	rndm := rand.New(rand.NewSource(0))

	distinct := map[string]struct{}{}
	var userList []users.User
	for i := 0; i < 50; i++ {
		platform := testutil.RandomString(rndm, 8)
		distinct[platform] = struct{}{}
		userList = append(userList, users.User{Claims: []users.Claim{
			{Game: testutil.RandomString(rndm, 12), Platform: platform},
		}})
	}

	set := Discover(userList)
	require.Len(t, set, len(distinct))

	path := filepath.Join(t.TempDir(), "plataformas.txt")
	require.NoError(t, Save(path, set))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(distinct))
	require.IsIncreasing(t, loaded)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plataformas.txt")
	require.NoError(t, os.WriteFile(path, []byte("  SNES  \n\n\nMega Drive\n"), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"SNES", "Mega Drive"}, loaded)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRegistryNotFound))
}
