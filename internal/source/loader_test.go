package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSources(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	csv := "Domain,Brand Name,Youtube,Country,Rating\n" +
		"bbc.com,BBC,https://www.youtube.com/@bbcnews,UK,high\n" +
		"cnn.com,CNN,https://www.youtube.com/user/cnn,US,high\n"

	sources, err := loader.Load(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "https://www.youtube.com/@bbcnews", sources[0].YoutubeURL)
	assert.Equal(t, "BBC", sources[0].BrandName)
	assert.Equal(t, "high", sources[0].Rating)
	assert.Equal(t, "cnn.com", sources[1].Domain)
}

func TestLoadSkipsRowsWithoutURL(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	csv := "Domain,Youtube\n" +
		"nourl.com,\n" +
		"ok.com,https://www.youtube.com/@ok\n"

	sources, err := loader.Load(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "ok.com", sources[0].Domain)
}

func TestLoadExpandsCommaSeparatedURLs(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	csv := "Domain,Youtube\n" +
		"multi.com,\"https://www.youtube.com/@one, https://www.youtube.com/@two\"\n"

	sources, err := loader.Load(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "https://www.youtube.com/@one", sources[0].YoutubeURL)
	assert.Equal(t, "https://www.youtube.com/@two", sources[1].YoutubeURL)
	assert.Equal(t, "multi.com", sources[1].Domain)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	// Unclosed quote makes the second row unparseable
	csv := "Domain,Youtube\n" +
		"bad.com,\"https://www.youtube.com/@broken\n" +
		"ok.com,https://www.youtube.com/@fine\n"

	sources, err := loader.Load(context.Background(), writeCSV(t, csv))
	require.NoError(t, err)
	for _, s := range sources {
		assert.NotEqual(t, "bad.com", s.Domain)
	}
}

func TestLoadMissingYoutubeColumn(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	_, err := loader.Load(context.Background(), writeCSV(t, "Domain,Brand Name\nx.com,X\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	logger, _ := log.NewCslLogger()
	loader, _ := NewLoader(logger)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
