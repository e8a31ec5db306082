package gtfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/logging"
)

func isLocalSource(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

func rawGtfsData(ctx context.Context, source string, logger *slog.Logger) ([]byte, error) {
	if isLocalSource(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "gtfs_download")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// loadGTFSData loads and parses GTFS data from either a URL or a local file
func loadGTFSData(ctx context.Context, source string, logger *slog.Logger) (*gtfs.Static, error) {
	b, err := rawGtfsData(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return staticData, nil
}

// Load builds a catalogue from a static GTFS feed. The source is a local zip
// path or an http(s) URL. A nil logger is taken from ctx.
func Load(ctx context.Context, source string, logger *slog.Logger) (*catalogue.Catalogue, error) {
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	start := time.Now()

	staticData, err := loadGTFSData(ctx, source, logger)
	if err != nil {
		logging.LogError(logger, "failed to load GTFS feed", err, slog.String("source", source))
		return nil, err
	}

	c, err := FromStatic(staticData, logger)
	if err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "gtfs_feed_loaded",
		slog.String("source", source),
		slog.Int("stops", c.StopCount()),
		slog.Int("routes", c.RouteCount()),
		slog.Duration("duration", time.Since(start)))
	return c, nil
}
