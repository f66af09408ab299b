package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"playstore_analyzer/internal/domain"
	"playstore_analyzer/internal/source/playstore"
)

type Source interface {
	AppDetails(ctx context.Context, appID string) (*domain.AppMetadata, error)
	AllReviews(ctx context.Context, appID, lang, country string, sort playstore.Sort) ([]domain.RawReview, error)
}

type Exporter interface {
	Export(run *domain.AnalysisRun) (domain.ArtifactSet, error)
}

type RunHistory interface {
	Record(ctx context.Context, record *domain.RunRecord) error
	Recent(ctx context.Context, appID string, limit int) ([]domain.RunRecord, error)
}
