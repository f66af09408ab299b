package domain

import "time"

// RunRecord is the row persisted for one completed analysis run.
type RunRecord struct {
	ID            int64     `db:"id"`
	AppID         string    `db:"app_id"`
	StartedAt     time.Time `db:"started_at"`
	ReviewCount   int       `db:"review_count"`
	AverageLength float64   `db:"average_length"`
	ReviewsPath   string    `db:"reviews_path"`
	DetailsPath   string    `db:"details_path"`
	ChartPath     string    `db:"chart_path"`
}
