package analysis

import (
	"sort"

	"playstore_analyzer/internal/domain"
)

// Summarize computes the rating distribution, percentage shares,
// average content length and the recentN most recent reviews for a
// record sequence. An empty sequence fails with EmptyDatasetError so
// callers never divide by zero.
func Summarize(records []domain.ReviewRecord, recentN int) (*domain.Summary, error) {
	if len(records) == 0 {
		return nil, &domain.EmptyDatasetError{}
	}

	dist := make(domain.RatingDistribution)
	lengthSum := 0
	for _, r := range records {
		dist[r.Score]++
		lengthSum += r.Length
	}

	return &domain.Summary{
		Distribution:  dist,
		Percentages:   dist.Percentages(),
		AverageLength: float64(lengthSum) / float64(len(records)),
		MostRecent:    mostRecent(records, recentN),
		Total:         len(records),
	}, nil
}

// mostRecent returns min(n, len(records)) records ordered by
// timestamp descending. The sort is stable, so ties keep their
// original input order.
func mostRecent(records []domain.ReviewRecord, n int) []domain.ReviewRecord {
	ordered := make([]domain.ReviewRecord, len(records))
	copy(ordered, records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].At.After(ordered[j].At)
	})

	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}
