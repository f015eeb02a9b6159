// Package ingest runs the platform catalog ingestion pipeline:
// platform discovery, page retrieval, validation, extraction,
// connection scanning, export and persistence. Stages run strictly
// sequentially; every per-item failure is logged and the item dropped,
// the run itself never aborts because of one bad platform.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"infwebnet-backend/lib/catalog"
	"infwebnet-backend/lib/catalog/store"
	"infwebnet-backend/lib/platforms"
	"infwebnet-backend/lib/scrapers/wiki"
	"infwebnet-backend/lib/textutil"
	"infwebnet-backend/lib/users"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/ingest")

const (
	RegistryFile    = "plataformas.txt"
	FetchErrorLog   = "erros_download.txt"
	ParseErrorLog   = "erros_parse.txt"
	ConnectionsFile = "conexoes_plataformas.json"
	CatalogFile     = "dados_jogos_plataformas.json"
)

// suggestions below this similarity are noise, not near-misses
const suggestionThreshold = 0.85

type Pipeline struct {
	client    wiki.Client
	store     store.Store
	outputDir string
}

type Options struct {
	Client    wiki.Client
	Store     store.Store
	OutputDir string
}

func New(opts Options) Pipeline {
	return Pipeline{
		client:    opts.Client,
		store:     opts.Store,
		outputDir: opts.OutputDir,
	}
}

type Result struct {
	Platforms    []string
	Pages        []wiki.Page
	Catalog      []catalog.Entry
	Connections  *wiki.Connections
	Associations map[string][]catalog.Association
}

func (p Pipeline) path(name string) string {
	return filepath.Join(p.outputDir, name)
}

// appendLog appends one human-readable line to an append-only error
// artifact. The logs are never machine-parsed, only their append-only
// behavior is contractual.
func (p Pipeline) appendLog(name, message string) {
	f, err := os.OpenFile(
		p.path(name),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		slog.Warn("failed to open error log", "log", name, "err", err)
		return
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, message)
	if err != nil {
		slog.Warn("failed to append to error log", "log", name, "err", err)
	}
}

// Run executes the whole pipeline over the user directory. An empty
// input degrades to empty outputs, not an error.
func (p Pipeline) Run(ctx context.Context, userList []users.User) (Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline:Run")
	defer span.End()
	span.SetAttributes(attribute.Int("users", len(userList)))

	err := os.MkdirAll(p.outputDir, 0755)
	if err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	result := Result{Connections: wiki.NewConnections()}

	// registry: discover, persist, read back as the working set
	set := platforms.Discover(userList)
	err = platforms.Save(p.path(RegistryFile), set)
	if err != nil {
		return Result{}, err
	}
	result.Platforms, err = platforms.Load(p.path(RegistryFile))
	if err != nil {
		return Result{}, err
	}
	slog.InfoContext(ctx, "discovered platforms", "count", len(result.Platforms))

	result.Pages = p.fetchAll(ctx, result.Platforms)
	result.Catalog = p.extractAll(ctx, result.Pages)

	// connections are scanned over every fetched page, including those
	// whose title failed validation
	for _, page := range result.Pages {
		result.Connections.Scan(page.Body)
	}
	err = result.Connections.WriteFile(p.path(ConnectionsFile))
	if err != nil {
		slog.WarnContext(ctx, "failed to write connections artifact", "err", err)
	}

	err = catalog.Export(p.path(CatalogFile), result.Catalog)
	if err != nil {
		slog.WarnContext(ctx, "failed to export catalog", "err", err)
	}

	err = p.store.SyncUsers(ctx, userList)
	if err != nil {
		slog.WarnContext(ctx, "failed to sync users table", "err", err)
	}
	err = p.store.Replace(ctx, result.Catalog)
	if err != nil {
		slog.WarnContext(ctx, "failed to persist catalog", "err", err)
	}

	result.Associations = catalog.Associate(userList, result.Catalog)
	p.logSuggestions(ctx, userList, result.Catalog, result.Associations)

	return result, nil
}

// fetchAll retrieves one page per platform, dropping failed platforms
// from the working set after noting them in the fetch error log.
func (p Pipeline) fetchAll(ctx context.Context, platformList []string) []wiki.Page {
	var pages []wiki.Page
	for _, platform := range platformList {
		page, err := p.client.FetchListPage(ctx, platform)
		if err != nil {
			p.appendLog(FetchErrorLog, err.Error())
			slog.WarnContext(ctx, "failed to fetch platform page",
				"platform", platform, "err", err)
			continue
		}
		slog.InfoContext(ctx, "fetched platform page",
			"platform", platform, "artifact", page.Path)
		pages = append(pages, page)
	}
	return pages
}

// extractAll validates and extracts every fetched page. Documents that
// fail to parse or whose title mismatches are noted in the parse error
// log and excluded from the catalog.
func (p Pipeline) extractAll(ctx context.Context, pages []wiki.Page) []catalog.Entry {
	var entries []catalog.Entry
	for _, page := range pages {
		doc, err := page.Parse()
		if err != nil {
			p.appendLog(ParseErrorLog, fmt.Sprintf(
				"failed to parse page %q: %s", page.Path, err,
			))
			slog.WarnContext(ctx, "failed to parse page",
				"artifact", page.Path, "err", err)
			continue
		}

		err = wiki.ValidateTitle(doc, page.Platform)
		if err != nil {
			var mismatch *wiki.TitleMismatchError
			if errors.As(err, &mismatch) {
				p.appendLog(ParseErrorLog, fmt.Sprintf(
					"failed to validate page title of %q: %s", page.Path, err,
				))
				slog.WarnContext(ctx, "page title mismatch",
					"artifact", page.Path, "title", mismatch.Title,
					"platform", mismatch.Platform)
				continue
			}
			p.appendLog(ParseErrorLog, err.Error())
			continue
		}
		slog.InfoContext(ctx, "validated page title", "platform", page.Platform)

		entry := wiki.ExtractCatalog(doc, page.Platform)
		slog.InfoContext(ctx, "extracted platform catalog",
			"platform", entry.Platform, "games", len(entry.Games))
		entries = append(entries, entry)
	}
	return entries
}

// logSuggestions hints at claims that matched a platform entry but no
// record, naming the closest catalog title. Hints never become
// associations.
func (p Pipeline) logSuggestions(
	ctx context.Context,
	userList []users.User,
	entries []catalog.Entry,
	associations map[string][]catalog.Association,
) {
	for _, u := range userList {
		matched := map[string]bool{}
		for _, a := range associations[u.ID] {
			matched[a.Game+"\x00"+a.Platform] = true
		}

		for _, claim := range u.Claims {
			if matched[claim.Game+"\x00"+claim.Platform] {
				continue
			}
			for _, entry := range entries {
				if !textutil.EqualFold(entry.Platform, claim.Platform) {
					continue
				}
				best, score := catalog.SuggestTitle(claim.Game, entry)
				if score >= suggestionThreshold {
					slog.InfoContext(ctx, "claim near-miss",
						"user", u.ID, "claimed", claim.Game,
						"closest", best, "platform", entry.Platform)
				}
			}
		}
	}
}
