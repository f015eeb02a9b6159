package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"infwebnet-backend/lib/catalog"
	"infwebnet-backend/lib/sqliteutil"
	"infwebnet-backend/lib/telemetry"
	"infwebnet-backend/lib/users"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (Store, context.Context) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog/store")
	t.Cleanup(cleanup)

	db, err := sqliteutil.OpenMemory(Schema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return New(db), ctx
}

func TestReplace(t *testing.T) {
	store, ctx := testStore(t)

	first := []catalog.Entry{
		{Platform: "SNES", Games: []catalog.Game{
			{Name: "Chrono Trigger", Attributes: catalog.Attributes{
				{Key: "Título", Value: "Chrono Trigger"},
				{Key: "Ano", Value: "1995"},
			}},
			{Name: "Super Metroid"},
		}},
		{Platform: "Switch", Games: []catalog.Game{
			{Name: "Zelda"},
		}},
	}
	require.NoError(t, store.Replace(ctx, first))

	n, err := store.CountGames(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	// a second run fully replaces the table, nothing accumulates
	second := []catalog.Entry{
		{Platform: "Mega Drive", Games: []catalog.Game{{Name: "Sonic"}}},
	}
	require.NoError(t, store.Replace(ctx, second))

	n, err = store.CountGames(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestUsersByGame(t *testing.T) {
	store, ctx := testStore(t)

	err := store.SyncUsers(ctx, []users.User{
		{ID: "1", FirstName: "Renato", LastName: "Silva", Claims: []users.Claim{
			{Game: "Chrono Trigger", Platform: "SNES"},
		}},
		{ID: "2", FirstName: "Maria", LastName: "Souza", Claims: []users.Claim{
			{Game: "Zelda", Platform: "Switch"},
		}},
	})
	require.NoError(t, err)

	found, err := store.UsersByGame(ctx, "chrono trigger")
	require.NoError(t, err)
	require.Equal(t, []UserName{{FirstName: "Renato", LastName: "Silva"}}, found)

	found, err = store.UsersByGame(ctx, "Sonic")
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestUsersByGameEmptyInput(t *testing.T) {
	store, ctx := testStore(t)

	_, err := store.UsersByGame(ctx, "   ")
	require.True(t, errors.Is(err, ErrEmptyQuery))
}
