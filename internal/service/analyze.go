package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"playstore_analyzer/internal/analysis"
	"playstore_analyzer/internal/config"
	"playstore_analyzer/internal/domain"
	"playstore_analyzer/internal/relay"
	"playstore_analyzer/internal/source/playstore"
)

// AnalyzeService runs the fetch → tabulate → summarize → export
// pipeline for one app identifier, reporting every transition to the
// caller's sink. Exactly one run is expected in flight at a time; the
// frontends serialize triggers through a single worker.
type AnalyzeService struct {
	source   Source
	exporter Exporter
	history  RunHistory
	logger   *slog.Logger

	lang    string
	country string
	sort    playstore.Sort
	recentN int
}

func NewAnalyzeService(
	source Source,
	exporter Exporter,
	history RunHistory,
	logger *slog.Logger,
	cfg *config.Config,
) *AnalyzeService {
	return &AnalyzeService{
		source:   source,
		exporter: exporter,
		history:  history,
		logger:   logger.With("component", "analyze"),
		lang:     cfg.Fetch.Lang,
		country:  cfg.Fetch.Country,
		sort:     playstore.ParseSort(cfg.Fetch.Sort),
		recentN:  cfg.Analysis.RecentReviews,
	}
}

// Run executes one analysis. The enable-trigger message is emitted on
// every exit path so the frontend's control never stays disabled. All
// failures are also returned as typed domain errors.
func (s *AnalyzeService) Run(ctx context.Context, appID string, sink relay.Sink) (*domain.AnalysisRun, error) {
	defer sink.Notify(relay.EnableTrigger())

	appID = strings.TrimSpace(appID)
	if appID == "" {
		err := &domain.InvalidInputError{Reason: "please enter an app package name"}
		s.fail(sink, err)
		return nil, err
	}

	run := &domain.AnalysisRun{AppID: appID, StartedAt: time.Now()}

	s.transition(sink, StateFetchingMetadata, "Fetching app details...")
	sink.Notify(relay.Text(fmt.Sprintf("Analyzing app: %s", appID)))

	metadata, err := s.source.AppDetails(ctx, appID)
	if err != nil {
		ferr := &domain.MetadataFetchError{AppID: appID, Err: err}
		s.fail(sink, ferr)
		return nil, ferr
	}
	run.Metadata = metadata
	s.reportDetails(sink, metadata)

	s.transition(sink, StateFetchingReviews, "Fetching reviews...")

	raw, err := s.source.AllReviews(ctx, appID, s.lang, s.country, s.sort)
	if err != nil {
		ferr := &domain.ReviewFetchError{AppID: appID, Err: err}
		s.fail(sink, ferr)
		return nil, ferr
	}
	sink.Notify(relay.Text(fmt.Sprintf("Fetched %d reviews", len(raw))))

	s.transition(sink, StateAnalyzing, "Analyzing reviews...")

	records, err := analysis.Tabulate(raw)
	if err != nil {
		s.fail(sink, err)
		return nil, err
	}
	run.Reviews = records

	if len(records) == 0 {
		// Statistics are skipped rather than failing the run; the
		// metadata export below still happens.
		sink.Notify(relay.Text("No reviews returned; skipping statistics"))
	} else {
		summary, err := analysis.Summarize(records, s.recentN)
		if err != nil {
			s.fail(sink, err)
			return nil, err
		}
		run.Summary = summary
		s.reportSummary(sink, summary)
	}

	s.transition(sink, StateExporting, "Saving results...")

	artifacts, err := s.exporter.Export(run)
	if err != nil {
		s.fail(sink, err)
		return nil, err
	}
	s.reportArtifacts(sink, artifacts)
	s.recordHistory(ctx, run, artifacts)

	s.transition(sink, StateDone, "Analysis complete!")
	sink.Notify(relay.Success("Analysis completed successfully!"))

	s.logger.Info("run completed",
		"app_id", appID,
		"reviews", len(records),
		"duration", time.Since(run.StartedAt),
	)

	return run, nil
}

func (s *AnalyzeService) transition(sink relay.Sink, state State, status string) {
	s.logger.Debug("state transition", "state", state.String())
	sink.Notify(relay.Status(status))
	sink.Notify(relay.Progress(progressFor(state)))
}

func (s *AnalyzeService) fail(sink relay.Sink, err error) {
	s.logger.Error("run failed", "error", err)
	sink.Notify(relay.Status("Error occurred!"))
	sink.Notify(relay.Error(err.Error()))
	sink.Notify(relay.Progress(progressFor(StateError)))
}

func (s *AnalyzeService) reportDetails(sink relay.Sink, m *domain.AppMetadata) {
	sink.Notify(relay.Text("App Details:"))
	sink.Notify(relay.Text(fmt.Sprintf("Title: %s", m.Title)))
	sink.Notify(relay.Text(fmt.Sprintf("Current Rating: %.1f", m.Score)))
	sink.Notify(relay.Text(fmt.Sprintf("Total Reviews: %d", m.Reviews)))
	sink.Notify(relay.Text(fmt.Sprintf("Installs: %s", m.Installs)))
	sink.Notify(relay.Text(fmt.Sprintf("Updated: %s", m.Updated.Format("2006-01-02 15:04:05"))))
}

func (s *AnalyzeService) reportSummary(sink relay.Sink, summary *domain.Summary) {
	sink.Notify(relay.Text("Ratings Distribution:"))
	for _, rating := range summary.Distribution.Ratings() {
		sink.Notify(relay.Text(fmt.Sprintf("%d stars: %d reviews (%.1f%%)",
			rating, summary.Distribution[rating], summary.Percentages[rating])))
	}

	sink.Notify(relay.Text("Review Analysis:"))
	sink.Notify(relay.Text(fmt.Sprintf("Total Reviews Analyzed: %d", summary.Total)))
	sink.Notify(relay.Text(fmt.Sprintf("Average Review Length: %.1f characters", summary.AverageLength)))

	sink.Notify(relay.Text("Most Recent Reviews:"))
	for _, review := range summary.MostRecent {
		sink.Notify(relay.Text(fmt.Sprintf("Rating: %d stars", review.Score)))
		sink.Notify(relay.Text(fmt.Sprintf("Date: %s", review.At.Format("2006-01-02 15:04:05"))))
		sink.Notify(relay.Text(fmt.Sprintf("Content: %s", preview(review.Content, 200))))
	}
}

func (s *AnalyzeService) reportArtifacts(sink relay.Sink, artifacts domain.ArtifactSet) {
	sink.Notify(relay.Text(fmt.Sprintf("Reviews saved to %s", artifacts.ReviewsCSV)))
	sink.Notify(relay.Text(fmt.Sprintf("App details saved to %s", artifacts.DetailsJSON)))
	if artifacts.ChartPNG != "" {
		sink.Notify(relay.Text(fmt.Sprintf("Ratings plot saved to %s", artifacts.ChartPNG)))
	}
}

// recordHistory is best effort: a missing store is skipped, a failed
// insert is logged but never fails the run.
func (s *AnalyzeService) recordHistory(ctx context.Context, run *domain.AnalysisRun, artifacts domain.ArtifactSet) {
	if s.history == nil {
		return
	}

	record := &domain.RunRecord{
		AppID:       run.AppID,
		StartedAt:   run.StartedAt,
		ReviewCount: len(run.Reviews),
		ReviewsPath: artifacts.ReviewsCSV,
		DetailsPath: artifacts.DetailsJSON,
		ChartPath:   artifacts.ChartPNG,
	}
	if run.Summary != nil {
		record.AverageLength = run.Summary.AverageLength
	}

	if err := s.history.Record(ctx, record); err != nil {
		s.logger.Warn("failed to record run history", "error", err)
	}
}

func preview(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
