package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"infwebnet-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const snesPage = `<html>
<head><title>Lista de jogos para SNES</title></head>
<body>
<table class="wikitable">
<tr><th>Título</th><th>Ano</th></tr>
<tr><td>Chrono Trigger</td><td>1995</td></tr>
</table>
</body>
</html>`

func testServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wiki/Lista_de_jogos_para_SNES":
			w.Write([]byte(snesPage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchListPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/wiki")
	defer cleanup()

	server := testServer(t)
	outputDir := t.TempDir()
	client := NewClient(ClientOptions{
		BaseUrl:   server.URL,
		OutputDir: outputDir,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	page, err := client.FetchListPage(ctx, "SNES")
	require.NoError(t, err)
	require.Equal(t, "SNES", page.Platform)
	require.Equal(t, filepath.Join(outputDir, "plataforma_SNES.html"), page.Path)

	written, err := os.ReadFile(page.Path)
	require.NoError(t, err)
	require.Equal(t, []byte(snesPage), written)
	require.Equal(t, written, page.Body)
}

func TestFetchListPageHttpError(t *testing.T) {
	server := testServer(t)
	client := NewClient(ClientOptions{
		BaseUrl:   server.URL,
		OutputDir: t.TempDir(),
	})

	_, err := client.FetchListPage(context.Background(), "Plataforma Inexistente")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, FetchHttp, fetchErr.Kind)
	require.Equal(t, http.StatusNotFound, fetchErr.Status)
	require.Equal(t, "Plataforma Inexistente", fetchErr.Platform)
}

func TestFetchListPageTransportError(t *testing.T) {
	server := testServer(t)
	url := server.URL
	server.Close()

	client := NewClient(ClientOptions{
		BaseUrl:   url,
		OutputDir: t.TempDir(),
	})

	_, err := client.FetchListPage(context.Background(), "SNES")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, FetchTransport, fetchErr.Kind)
}

func TestArtifactNaming(t *testing.T) {
	require.Equal(t, "plataforma_Mega_Drive.html", ArtifactName("Mega Drive"))
	require.Equal(t, "Mega Drive", PlatformFromArtifact("out/plataforma_Mega_Drive.html"))
}
