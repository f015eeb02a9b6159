package wiki

import (
	"infwebnet-backend/lib/catalog"
	"infwebnet-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	titleColumn     = "Título"
	gameColumn      = "Jogo"
	unknownGameName = "Desconhecido"
)

// ExtractCatalog converts every wikitable in a validated document into
// game records. The first row of each table supplies the column
// headers; tables without one are skipped, and so is any row whose
// cell count differs from the header's (merged/spanning cells get no
// partial mapping). Assumes ValidateTitle already ran.
func ExtractCatalog(doc *goquery.Document, platform string) catalog.Entry {
	entry := catalog.Entry{Platform: platform, Games: []catalog.Game{}}

	doc.Find("table.wikitable").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		var columns []string
		rows.First().Find("th").Each(func(_ int, th *goquery.Selection) {
			columns = append(columns, textutil.CollapseWhitespace(th.Text()))
		})
		if len(columns) == 0 {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() != len(columns) {
				return
			}

			attrs := make(catalog.Attributes, 0, len(columns))
			cells.Each(func(i int, cell *goquery.Selection) {
				attrs = append(attrs, catalog.Field{
					Key:   columns[i],
					Value: textutil.CollapseWhitespace(cell.Text()),
				})
			})

			entry.Games = append(entry.Games, catalog.Game{
				Name:       resolveGameName(attrs),
				Attributes: attrs,
			})
		})
	})

	return entry
}

func resolveGameName(attrs catalog.Attributes) string {
	if name, ok := attrs.Get(titleColumn); ok && name != "" {
		return name
	}
	if name, ok := attrs.Get(gameColumn); ok && name != "" {
		return name
	}
	return unknownGameName
}
