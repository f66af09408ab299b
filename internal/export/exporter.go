package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"playstore_analyzer/internal/domain"
)

const timestampLayout = "20060102_150405"

// Exporter writes the artifacts of one analysis run into a per-app
// directory under the results root. All files of one Export call
// share a single timestamp captured at the start of the call; two
// exports within the same second collide, which is accepted.
type Exporter struct {
	resultsDir string
	logger     *slog.Logger

	now func() time.Time
}

func New(resultsDir string, logger *slog.Logger) *Exporter {
	return &Exporter{
		resultsDir: resultsDir,
		logger:     logger.With("component", "exporter"),
		now:        time.Now,
	}
}

// Export writes the review table, the app details document and the
// rating-distribution chart. Any filesystem failure surfaces as
// ExportError; files written before the failure stay on disk.
func (e *Exporter) Export(run *domain.AnalysisRun) (domain.ArtifactSet, error) {
	timestamp := e.now().Format(timestampLayout)
	dir := filepath.Join(e.resultsDir, run.AppID)

	artifacts := domain.ArtifactSet{
		Dir:       dir,
		Timestamp: timestamp,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return artifacts, &domain.ExportError{Path: dir, Err: err}
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("reviews_%s.csv", timestamp))
	if err := e.writeReviews(csvPath, run.Reviews); err != nil {
		return artifacts, err
	}
	artifacts.ReviewsCSV = csvPath
	e.logger.Info("reviews saved", "path", csvPath, "rows", len(run.Reviews))

	jsonPath := filepath.Join(dir, fmt.Sprintf("app_details_%s.json", timestamp))
	if err := e.writeDetails(jsonPath, run.Metadata); err != nil {
		return artifacts, err
	}
	artifacts.DetailsJSON = jsonPath
	e.logger.Info("app details saved", "path", jsonPath)

	if run.Summary != nil && len(run.Summary.Distribution) > 0 {
		chartPath := filepath.Join(dir, fmt.Sprintf("ratings_distribution_%s.png", timestamp))
		if err := e.writeChart(chartPath, run.Summary.Distribution); err != nil {
			return artifacts, err
		}
		artifacts.ChartPNG = chartPath
		e.logger.Info("ratings chart saved", "path", chartPath)
	}

	return artifacts, nil
}

func (e *Exporter) writeReviews(path string, records []domain.ReviewRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"reviewId", "userName", "score", "content", "at", "reviewLength", "thumbsUpCount", "appVersion"}
	if err := w.Write(header); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}

	for _, r := range records {
		row := []string{
			r.ReviewID,
			r.UserName,
			strconv.Itoa(r.Score),
			r.Content,
			r.At.Format(time.RFC3339),
			strconv.Itoa(r.Length),
			strconv.Itoa(r.ThumbsUp),
			r.AppVersion,
		}
		if err := w.Write(row); err != nil {
			return &domain.ExportError{Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	return nil
}

func (e *Exporter) writeDetails(path string, metadata *domain.AppMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "    ")
	if err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	return nil
}
