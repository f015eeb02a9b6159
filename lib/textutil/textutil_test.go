package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "playstation 2", Normalize("PlayStation 2"))
	require.Equal(t, "mega drive", Normalize("MEGA DRIVE"))
	// decomposed "é" (e + combining acute) composes to the same rune
	require.Equal(t, Normalize("Macé"), Normalize("Macé"))
}

func TestContainsNormalized(t *testing.T) {
	require.True(t, ContainsNormalized(
		"LISTA DE JOGOS PARA PLAYSTATION 2",
		"PlayStation 2",
	))
	require.True(t, ContainsNormalized(
		"Lista de jogos para Nintendo 64 – Wikipédia",
		"nintendo 64",
	))
	require.False(t, ContainsNormalized(
		"Lista de jogos para Super Nintendo",
		"PlayStation",
	))
}

func TestEqualFold(t *testing.T) {
	require.True(t, EqualFold("Zelda", "zelda"))
	require.True(t, EqualFold("SWITCH", "switch"))
	require.False(t, EqualFold("Switch", "Switch Lite"))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Chrono Trigger", CollapseWhitespace("  Chrono \n\t Trigger "))
}
