package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore_analyzer/internal/domain"
)

func record(id string, score int, content string, at time.Time) domain.ReviewRecord {
	return domain.ReviewRecord{
		ReviewID: id,
		Score:    score,
		Content:  content,
		At:       at,
		Length:   domain.ContentLength(content),
	}
}

func TestSummarize_Distribution(t *testing.T) {
	now := time.Now()
	records := []domain.ReviewRecord{
		record("a", 5, "love it", now),
		record("b", 3, "meh", now),
		record("c", 5, "still love it", now),
	}

	summary, err := Summarize(records, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.RatingDistribution{3: 1, 5: 2}, summary.Distribution)
	assert.Equal(t, map[int]float64{3: 33.3, 5: 66.7}, summary.Percentages)
	assert.Equal(t, 3, summary.Total)
}

func TestSummarize_DistributionSumsToTotal(t *testing.T) {
	now := time.Now()
	var records []domain.ReviewRecord
	scores := []int{1, 1, 2, 3, 3, 3, 4, 5, 5, 5, 5}
	for i, s := range scores {
		records = append(records, record(string(rune('a'+i)), s, "x", now))
	}

	summary, err := Summarize(records, 5)
	require.NoError(t, err)

	assert.Equal(t, len(records), summary.Distribution.Total())

	sum := 0.0
	for _, share := range summary.Percentages {
		sum += share
	}
	assert.InDelta(t, 100.0, sum, 0.1*float64(len(summary.Percentages)))
}

func TestSummarize_AverageLength(t *testing.T) {
	now := time.Now()
	records := []domain.ReviewRecord{
		record("a", 5, "1234", now),
		record("b", 4, "12", now),
	}

	summary, err := Summarize(records, 5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, summary.AverageLength, 1e-9)
}

func TestSummarize_MostRecent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.ReviewRecord{
		record("oldest", 1, "x", base),
		record("tie-first", 3, "x", base.Add(time.Hour)),
		record("tie-second", 4, "x", base.Add(time.Hour)),
		record("newest", 5, "x", base.Add(2*time.Hour)),
	}

	summary, err := Summarize(records, 3)
	require.NoError(t, err)

	require.Len(t, summary.MostRecent, 3)
	assert.Equal(t, "newest", summary.MostRecent[0].ReviewID)
	// Equal timestamps keep input order (stable sort).
	assert.Equal(t, "tie-first", summary.MostRecent[1].ReviewID)
	assert.Equal(t, "tie-second", summary.MostRecent[2].ReviewID)
}

func TestSummarize_MostRecentFewerThanN(t *testing.T) {
	now := time.Now()
	records := []domain.ReviewRecord{
		record("a", 5, "x", now),
		record("b", 4, "x", now.Add(time.Minute)),
	}

	summary, err := Summarize(records, 5)
	require.NoError(t, err)
	require.Len(t, summary.MostRecent, 2)
	assert.Equal(t, "b", summary.MostRecent[0].ReviewID)
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.ReviewRecord{
		record("a", 5, "x", base.Add(time.Hour)),
		record("b", 4, "x", base),
	}

	_, err := Summarize(records, 5)
	require.NoError(t, err)

	assert.Equal(t, "a", records[0].ReviewID)
	assert.Equal(t, "b", records[1].ReviewID)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, 5)

	var emptyErr *domain.EmptyDatasetError
	assert.ErrorAs(t, err, &emptyErr)
}
