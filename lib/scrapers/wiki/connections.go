package wiki

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

var urlRegex = regexp.MustCompile(`https?://[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=]+`)

// matches whole lines only: local part, dotted domain labels, a 2-6
// letter tld with an optional two-letter country suffix
var emailRegex = regexp.MustCompile(`(?m)^[\w-]+(?:\.[\w-]+)*@(?:[\w-]+\.)*\w[\w-]{0,66}\.[a-z]{2,6}(?:\.[a-z]{2})?$`)

// Connections accumulates the urls and email addresses pattern-matched
// out of fetched documents. Matches are syntactic only, nothing is
// deduplicated or validated further.
type Connections struct {
	Urls   []string `json:"urls"`
	Emails []string `json:"emails"`
}

func NewConnections() *Connections {
	return &Connections{
		Urls:   []string{},
		Emails: []string{},
	}
}

// Scan extends the accumulated lists with every match in the raw
// document text.
func (c *Connections) Scan(body []byte) {
	text := string(body)
	c.Urls = append(c.Urls, urlRegex.FindAllString(text, -1)...)
	c.Emails = append(c.Emails, emailRegex.FindAllString(text, -1)...)
}

// WriteFile serializes the accumulated connections to a single JSON
// artifact.
func (c *Connections) WriteFile(path string) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode connections: %w", err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("write connections artifact: %w", err)
	}
	return nil
}
