// Package wiki scrapes the reference site's "Lista de jogos para X"
// pages: one fetch per platform, title validation, wikitable
// extraction and a url/email connection scan.
package wiki

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"infwebnet-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wiki")

const DefaultBaseUrl = "https://pt.wikipedia.org"

const (
	listPagePrefix = "/wiki/Lista_de_jogos_para_"
	artifactPrefix = "plataforma_"
	artifactSuffix = ".html"
)

type FetchKind int

const (
	FetchHttp FetchKind = iota
	FetchTransport
	FetchUnknown
)

// FetchError classifies a failed page retrieval so callers can branch
// on kind rather than message text.
type FetchError struct {
	Kind     FetchKind
	Platform string
	Status   int
	Reason   string
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHttp:
		return fmt.Sprintf(
			"http error fetching page for platform %s: %d - %s",
			e.Platform, e.Status, e.Reason,
		)
	case FetchTransport:
		return fmt.Sprintf(
			"transport error fetching page for platform %s: %s",
			e.Platform, e.Reason,
		)
	default:
		return fmt.Sprintf(
			"unknown error fetching page for platform %s: %s",
			e.Platform, e.Reason,
		)
	}
}

type Client struct {
	http      *resty.Client
	outputDir string
}

type ClientOptions struct {
	// BaseUrl overrides the reference site root, for tests.
	BaseUrl string
	// OutputDir is where fetched page artifacts are written.
	OutputDir string
}

func NewClient(opts ClientOptions) Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/wiki/http")

	return Client{
		http:      client,
		outputDir: opts.OutputDir,
	}
}

// Page is one fetched reference document plus the platform it was
// fetched for and the artifact it was written to.
type Page struct {
	Platform string
	Path     string
	Body     []byte
}

func platformSlug(platform string) string {
	return strings.ReplaceAll(platform, " ", "_")
}

// ArtifactName returns the deterministic artifact file name for a
// platform's fetched page.
func ArtifactName(platform string) string {
	return artifactPrefix + platformSlug(platform) + artifactSuffix
}

// PlatformFromArtifact derives the platform name back from an artifact
// path. Extraction tags entries with this name, not the page title.
func PlatformFromArtifact(path string) string {
	name := filepath.Base(path)
	name = strings.TrimPrefix(name, artifactPrefix)
	name = strings.TrimSuffix(name, artifactSuffix)
	return strings.ReplaceAll(name, "_", " ")
}

// FetchListPage retrieves the platform's reference page in a single
// attempt (no retry, no backoff) and writes the raw document to its
// artifact. Failures come back as a *FetchError.
func (c Client) FetchListPage(ctx context.Context, platform string) (Page, error) {
	ctx, span := tracer.Start(ctx, "client:FetchListPage")
	defer span.End()
	span.SetAttributes(attribute.String("platform", platform))

	res, err := c.http.R().
		SetContext(ctx).
		Get(listPagePrefix + platformSlug(platform))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")

		kind := FetchUnknown
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			kind = FetchTransport
		}
		return Page{}, &FetchError{
			Kind:     kind,
			Platform: platform,
			Reason:   err.Error(),
		}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return Page{}, &FetchError{
			Kind:     FetchHttp,
			Platform: platform,
			Status:   res.StatusCode(),
			Reason:   http.StatusText(res.StatusCode()),
		}
	}

	path := filepath.Join(c.outputDir, ArtifactName(platform))
	err = os.WriteFile(path, res.Body(), 0644)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write page artifact")
		return Page{}, &FetchError{
			Kind:     FetchUnknown,
			Platform: platform,
			Reason:   err.Error(),
		}
	}

	return Page{
		Platform: platform,
		Path:     path,
		Body:     res.Body(),
	}, nil
}

// Parse turns a fetched page into a html document for validation and
// extraction.
func (p Page) Parse() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
}
