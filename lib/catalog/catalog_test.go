package catalog

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAttributesJSONOrder(t *testing.T) {
	attrs := Attributes{
		{Key: "Título", Value: "Chrono Trigger"},
		{Key: "Ano", Value: "1995"},
		{Key: "Desenvolvedora", Value: "Square"},
	}

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	require.Equal(
		t,
		`{"Título":"Chrono Trigger","Ano":"1995","Desenvolvedora":"Square"}`,
		string(data),
	)

	var decoded Attributes
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, attrs, decoded)
}

func TestAttributesGet(t *testing.T) {
	attrs := Attributes{{Key: "Jogo", Value: "Tetris"}}

	v, ok := attrs.Get("Jogo")
	require.True(t, ok)
	require.Equal(t, "Tetris", v)

	_, ok = attrs.Get("Título")
	require.False(t, ok)
}

func TestExportRoundTrip(t *testing.T) {
	entries := []Entry{
		{
			Platform: "SNES",
			Games: []Game{
				{
					Name: "Chrono Trigger",
					Attributes: Attributes{
						{Key: "Título", Value: "Chrono Trigger"},
						{Key: "Ano", Value: "1995"},
					},
				},
			},
		},
		{Platform: "Switch", Games: []Game{}},
	}

	path := filepath.Join(t.TempDir(), "dados_jogos_plataformas.json")
	require.NoError(t, Export(path, entries))

	loaded, err := LoadExport(path)
	require.NoError(t, err)
	if diff := cmp.Diff(entries, loaded); diff != "" {
		t.Fatalf("catalog changed across export round trip:\n%s", diff)
	}
}
