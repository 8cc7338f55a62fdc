package di

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer_AnalyzesEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[[{"label":"LABEL_0","score":0.87},{"label":"LABEL_1","score":0.13}]]`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`
huggingface:
  base_url: %s
classifier:
  candidates:
    - provider: huggingface
      model: test/fake-news
      probe: true
retrieval:
  enabled: false
logging:
  level: error
`, srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ctx := context.Background()
	container, err := BuildContainer(ctx, Options{ConfigFile: path})
	require.NoError(t, err)

	err = container.Invoke(func(analyzer ports.Analyzer, fe ports.Frontend) error {
		assert.NotNil(t, fe)
		report, err := analyzer.Analyze(ctx, "Celebrity claims COVID-19 vaccine contains tracking microchips")
		require.NoError(t, err)
		assert.Equal(t, core.CategoryMisleading, report.Verdict.Category)
		assert.InDelta(t, 0.87, report.Verdict.Confidence, 1e-9)
		assert.Equal(t, 0, report.Verdict.MatchCount)
		return nil
	})
	require.NoError(t, err)
}

func TestBuildContainer_NoUsableClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
classifier:
  candidates:
    - provider: nowhere
      model: m
logging:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	container, err := BuildContainer(context.Background(), Options{ConfigFile: path})
	require.NoError(t, err)

	err = container.Invoke(func(ports.Analyzer) {})
	assert.ErrorContains(t, err, "no classifier candidate is usable")
}

func TestBuildContainer_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\n"), 0o644))

	container, err := BuildContainer(context.Background(), Options{
		ConfigFile: path,
		Overrides:  map[string]interface{}{"server.listen_address": "127.0.0.1:9999"},
	})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config) {
		assert.Equal(t, "127.0.0.1:9999", cfg.GetServer().ListenAddress)
	})
	require.NoError(t, err)
}
