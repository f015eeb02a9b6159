package wiki

import (
	"fmt"

	"infwebnet-backend/lib/htmlutil"
	"infwebnet-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// TitleMismatchError reports a fetched page whose title does not
// describe the expected platform. This is routine per-item control
// flow, the caller logs it and skips the document.
type TitleMismatchError struct {
	Title    string
	Platform string
}

func (e *TitleMismatchError) Error() string {
	return fmt.Sprintf(
		"page title %q does not match platform %q",
		e.Title, e.Platform,
	)
}

// ValidateTitle checks that the document actually describes the
// expected platform before extraction. Both sides are NFC-normalized
// and lowercased, and the platform only has to appear as a substring
// so titles with extra qualifying text still pass.
func ValidateTitle(doc *goquery.Document, platform string) error {
	title := htmlutil.Title(doc)
	if !textutil.ContainsNormalized(title, platform) {
		return &TitleMismatchError{Title: title, Platform: platform}
	}
	return nil
}
