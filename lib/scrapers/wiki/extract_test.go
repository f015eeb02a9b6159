package wiki

import (
	"strings"
	"testing"

	"infwebnet-backend/lib/catalog"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractCatalog(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<table class="wikitable">
			<tr><th>Título</th><th>Ano</th></tr>
			<tr><td>Chrono Trigger</td><td>1995</td></tr>
			<tr><td>Super Metroid</td><td>1994</td></tr>
		</table>
		<table class="wikitable">
			<tr><th>Jogo</th><th>Gênero</th><th>Nota</th></tr>
			<tr><td>Donkey Kong Country</td><td>Plataforma</td><td>9</td></tr>
		</table>
		</body></html>
	`)

	entry := ExtractCatalog(doc, "SNES")
	require.Equal(t, "SNES", entry.Platform)
	require.Len(t, entry.Games, 3)

	require.Equal(t, "Chrono Trigger", entry.Games[0].Name)
	require.Equal(t, catalog.Attributes{
		{Key: "Título", Value: "Chrono Trigger"},
		{Key: "Ano", Value: "1995"},
	}, entry.Games[0].Attributes)

	// second table resolves names from the "Jogo" column
	require.Equal(t, "Donkey Kong Country", entry.Games[2].Name)
}

func TestExtractCatalogSkipsMismatchedRows(t *testing.T) {
	doc := parseHTML(t, `
		<table class="wikitable">
			<tr><th>Título</th><th>Ano</th></tr>
			<tr><td>Chrono Trigger</td><td>1995</td></tr>
			<tr><td colspan="2">linha mesclada</td></tr>
			<tr><td>A</td><td>B</td><td>C</td></tr>
		</table>
	`)

	entry := ExtractCatalog(doc, "SNES")
	require.Len(t, entry.Games, 1)
	require.Equal(t, "Chrono Trigger", entry.Games[0].Name)
}

func TestExtractCatalogSkipsHeaderlessTables(t *testing.T) {
	doc := parseHTML(t, `
		<table class="wikitable">
			<tr><td>sem cabeçalho</td></tr>
		</table>
		<table class="wikitable"></table>
	`)

	entry := ExtractCatalog(doc, "SNES")
	require.Empty(t, entry.Games)
}

func TestExtractCatalogUnknownName(t *testing.T) {
	doc := parseHTML(t, `
		<table class="wikitable">
			<tr><th>Ano</th><th>Gênero</th></tr>
			<tr><td>1995</td><td>RPG</td></tr>
		</table>
	`)

	entry := ExtractCatalog(doc, "SNES")
	require.Len(t, entry.Games, 1)
	require.Equal(t, "Desconhecido", entry.Games[0].Name)
}

func TestExtractCatalogIgnoresPlainTables(t *testing.T) {
	doc := parseHTML(t, `
		<table>
			<tr><th>Título</th></tr>
			<tr><td>Não é wikitable</td></tr>
		</table>
	`)

	entry := ExtractCatalog(doc, "SNES")
	require.Empty(t, entry.Games)
}

func TestValidateTitle(t *testing.T) {
	doc := parseHTML(t, `<html><head>
		<title>LISTA DE JOGOS PARA PLAYSTATION 2</title>
	</head><body></body></html>`)

	require.NoError(t, ValidateTitle(doc, "PlayStation 2"))
}

func TestValidateTitleMismatch(t *testing.T) {
	doc := parseHTML(t, `<html><head>
		<title>Alguma outra página</title>
	</head><body></body></html>`)

	err := ValidateTitle(doc, "Mega Drive")
	require.Error(t, err)

	var mismatch *TitleMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "Mega Drive", mismatch.Platform)
	require.Contains(t, mismatch.Title, "Alguma outra página")
}

func TestValidateTitleMissing(t *testing.T) {
	doc := parseHTML(t, `<html><body>sem título</body></html>`)

	var mismatch *TitleMismatchError
	require.ErrorAs(t, ValidateTitle(doc, "SNES"), &mismatch)
	require.Equal(t, "", mismatch.Title)
}
