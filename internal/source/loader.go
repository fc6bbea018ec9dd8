package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

// Loader reads channel sources from a CSV file. Malformed rows are skipped
// and logged, never fatal: one bad line in a large source list must not
// abort a harvest.
type Loader struct {
	Logger log.Logger
}

func NewLoader(logger log.Logger) (*Loader, error) {
	return &Loader{Logger: logger}, nil
}

// Load reads all sources from the CSV at path. The header row names the
// columns; only the Youtube column is required. Cells with several
// comma-separated URLs expand into one source each.
func (l *Loader) Load(ctx context.Context, path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read sources header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["Youtube"]; !ok {
		return nil, fmt.Errorf("sources file %s has no Youtube column", path)
	}

	cell := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var sources []Source
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			l.Logger.Warn(ctx, "Skipping malformed row %d in %s: %v", line, path, err)
			continue
		}

		rawURL := cell(record, "Youtube")
		if rawURL == "" {
			continue
		}

		// Some rows carry several URLs in one cell
		for _, url := range strings.Split(rawURL, ",") {
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			sources = append(sources, Source{
				YoutubeURL:    url,
				Domain:        cell(record, "Domain"),
				BrandName:     cell(record, "Brand Name"),
				Country:       cell(record, "Country"),
				Language:      cell(record, "Language"),
				Rating:        cell(record, "Rating"),
				Score:         cell(record, "Score"),
				Orientation:   cell(record, "Orientation"),
				TypeOfContent: cell(record, "Type of Content"),
				Topics:        cell(record, "Topics"),
				Owner:         cell(record, "Owner"),
				TypeOfOwner:   cell(record, "Type of Owner"),
			})
		}
	}

	l.Logger.Info(ctx, "Loaded %d channel sources from %s", len(sources), path)
	return sources, nil
}
