package export

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore_analyzer/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testRun() *domain.AnalysisRun {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.ReviewRecord{
		{ReviewID: "r1", UserName: "alice", Score: 5, Content: "great", At: at, Length: 5, ThumbsUp: 2, AppVersion: "1.0"},
		{ReviewID: "r2", UserName: "bob", Score: 3, Content: "ok, I guess", At: at.Add(time.Hour), Length: 11},
	}
	return &domain.AnalysisRun{
		AppID:     "com.example.app",
		StartedAt: time.Now(),
		Metadata: &domain.AppMetadata{
			AppID:    "com.example.app",
			Title:    "Example",
			Score:    4.2,
			Reviews:  1234,
			Installs: "1,000,000+",
			Updated:  at,
		},
		Reviews: records,
		Summary: &domain.Summary{
			Distribution: domain.RatingDistribution{3: 1, 5: 1},
		},
	}
}

func TestExport_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	exporter := New(dir, testLogger())

	artifacts, err := exporter.Export(testRun())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "com.example.app"), artifacts.Dir)
	require.FileExists(t, artifacts.ReviewsCSV)
	require.FileExists(t, artifacts.DetailsJSON)
	require.FileExists(t, artifacts.ChartPNG)

	// All three filenames carry the one timestamp of the call.
	assert.Contains(t, artifacts.ReviewsCSV, "reviews_"+artifacts.Timestamp+".csv")
	assert.Contains(t, artifacts.DetailsJSON, "app_details_"+artifacts.Timestamp+".json")
	assert.Contains(t, artifacts.ChartPNG, "ratings_distribution_"+artifacts.Timestamp+".png")
}

func TestExport_CSVContents(t *testing.T) {
	exporter := New(t.TempDir(), testLogger())

	artifacts, err := exporter.Export(testRun())
	require.NoError(t, err)

	f, err := os.Open(artifacts.ReviewsCSV)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"reviewId", "userName", "score", "content", "at", "reviewLength", "thumbsUpCount", "appVersion"}, rows[0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "ok, I guess", rows[2][3])
	assert.Equal(t, "11", rows[2][5])
}

func TestExport_DetailsJSON(t *testing.T) {
	exporter := New(t.TempDir(), testLogger())

	artifacts, err := exporter.Export(testRun())
	require.NoError(t, err)

	data, err := os.ReadFile(artifacts.DetailsJSON)
	require.NoError(t, err)

	var metadata domain.AppMetadata
	require.NoError(t, json.Unmarshal(data, &metadata))
	assert.Equal(t, "Example", metadata.Title)
	assert.Equal(t, int64(1234), metadata.Reviews)
	assert.Equal(t, "1,000,000+", metadata.Installs)
}

func TestExport_EmptyDatasetSkipsChart(t *testing.T) {
	exporter := New(t.TempDir(), testLogger())

	run := testRun()
	run.Reviews = nil
	run.Summary = nil

	artifacts, err := exporter.Export(run)
	require.NoError(t, err)

	require.FileExists(t, artifacts.ReviewsCSV)
	require.FileExists(t, artifacts.DetailsJSON)
	assert.Empty(t, artifacts.ChartPNG)

	f, err := os.Open(artifacts.ReviewsCSV)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestExport_DistinctTimestampsNeverCollide(t *testing.T) {
	exporter := New(t.TempDir(), testLogger())

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	exporter.now = func() time.Time { return first }
	a, err := exporter.Export(testRun())
	require.NoError(t, err)

	exporter.now = func() time.Time { return first.Add(time.Second) }
	b, err := exporter.Export(testRun())
	require.NoError(t, err)

	assert.NotEqual(t, a.ReviewsCSV, b.ReviewsCSV)
	require.FileExists(t, a.ReviewsCSV)
	require.FileExists(t, b.ReviewsCSV)
}

func TestExport_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	exporter := New(dir, testLogger())

	_, err := exporter.Export(testRun())

	var exportErr *domain.ExportError
	assert.ErrorAs(t, err, &exportErr)
}
