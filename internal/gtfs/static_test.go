package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcat/transit-catalogue/internal/catalogue"
)

var feedFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"A1,Test Agency,http://example.com,America/New_York\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
		"R1,A1,1,Line One,3\n" +
		"R2,A1,2,Loop,3\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,First,0,0\n" +
		"S2,Second,0,0.01\n" +
		"S3,Third,0.01,0.01\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WK,1,1,1,1,1,0,0,20240101,20241231\n",
	"trips.txt": "route_id,service_id,trip_id\n" +
		"R1,WK,T1\n" +
		"R1,WK,T2\n" +
		"R2,WK,T3\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:00:00,08:00:00,S1,1\n" +
		"T1,08:05:00,08:05:00,S2,2\n" +
		"T2,09:00:00,09:00:00,S1,1\n" +
		"T2,09:05:00,09:05:00,S2,2\n" +
		"T2,09:10:00,09:10:00,S3,3\n" +
		"T3,10:00:00,10:00:00,S1,1\n" +
		"T3,10:05:00,10:05:00,S2,2\n" +
		"T3,10:10:00,10:10:00,S3,3\n" +
		"T3,10:15:00,10:15:00,S1,4\n",
}

func buildFeed(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range feedFiles {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func assertFeedCatalogue(t *testing.T, c *catalogue.Catalogue) {
	t.Helper()

	assert.Equal(t, 3, c.StopCount())
	assert.Equal(t, 2, c.RouteCount())

	line, err := c.RouteInfo("R1")
	require.NoError(t, err)
	assert.Equal(t, catalogue.Linear, line.Type)
	assert.Equal(t, 5, line.StopCount)
	assert.Equal(t, 4448, line.RouteLength)

	loop, err := c.RouteInfo("R2")
	require.NoError(t, err)
	assert.Equal(t, catalogue.Circle, loop.Type)
	assert.Equal(t, 4, loop.StopCount)

	buses, err := c.BusesForStop("S1")
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, buses)
}

func TestLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, os.WriteFile(path, buildFeed(t), 0o600))

	c, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assertFeedCatalogue(t, c)
}

func TestLoadURL(t *testing.T) {
	feed := buildFeed(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.zip" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(feed)
	}))
	defer server.Close()

	t.Run("downloads and parses", func(t *testing.T) {
		c, err := Load(context.Background(), server.URL+"/feed.zip", nil)
		require.NoError(t, err)
		assertFeedCatalogue(t, c)
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		_, err := Load(context.Background(), server.URL+"/missing.zip", nil)
		assert.Error(t, err)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Load(ctx, server.URL+"/feed.zip", nil)
		assert.Error(t, err)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.zip"), nil)
		assert.Error(t, err)
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.zip")
		require.NoError(t, os.WriteFile(path, []byte("not a feed"), 0o600))

		_, err := Load(context.Background(), path, nil)
		assert.Error(t, err)
	})
}

func TestIsLocalSource(t *testing.T) {
	assert.True(t, isLocalSource("./feed.zip"))
	assert.True(t, isLocalSource("/data/gtfs.zip"))
	assert.False(t, isLocalSource("http://example.com/gtfs.zip"))
	assert.False(t, isLocalSource("https://example.com/gtfs.zip"))
}
