package domain

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"
)

// AppMetadata describes one Play Store listing. Immutable once fetched.
type AppMetadata struct {
	AppID    string    `json:"appId"`
	Title    string    `json:"title"`
	Score    float64   `json:"score"`
	Reviews  int64     `json:"reviews"`
	Installs string    `json:"installs"` // install-count bucket, e.g. "1,000,000,000+"
	Updated  time.Time `json:"updated"`
}

// RawReview is a review exactly as the fetch adapter returned it.
// Score and Content are pointers because the upstream payload can
// omit either field for individual records.
type RawReview struct {
	ReviewID   string
	UserName   string
	Score      *int
	Content    *string
	At         time.Time
	ThumbsUp   int
	AppVersion string
}

// ReviewRecord is a tabulated review with its derived content length.
type ReviewRecord struct {
	ReviewID   string    `json:"reviewId"`
	UserName   string    `json:"userName"`
	Score      int       `json:"score"`
	Content    string    `json:"content"`
	At         time.Time `json:"at"`
	Length     int       `json:"reviewLength"`
	ThumbsUp   int       `json:"thumbsUpCount"`
	AppVersion string    `json:"appVersion"`
}

// ContentLength counts runes, so multi-byte scripts measure the same
// way the review text reads.
func ContentLength(content string) int {
	return utf8.RuneCountInString(content)
}

// RatingDistribution maps a rating value (1-5) to the number of
// reviews that carry it. Keys exist only for ratings that occur.
type RatingDistribution map[int]int

// Total returns the sum of all counts.
func (d RatingDistribution) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// Ratings returns the occurring rating values in ascending order.
func (d RatingDistribution) Ratings() []int {
	ratings := make([]int, 0, len(d))
	for rating := range d {
		ratings = append(ratings, rating)
	}
	sort.Ints(ratings)
	return ratings
}

// Percentages returns each rating's share of the total, rounded to
// one decimal place. The caller must ensure the distribution is not
// empty.
func (d RatingDistribution) Percentages() map[int]float64 {
	total := d.Total()
	shares := make(map[int]float64, len(d))
	for rating, count := range d {
		shares[rating] = math.Round(float64(count)/float64(total)*1000) / 10
	}
	return shares
}

// Summary holds the descriptive statistics computed for one run.
type Summary struct {
	Distribution  RatingDistribution
	Percentages   map[int]float64
	AverageLength float64
	MostRecent    []ReviewRecord
	Total         int
}

// AnalysisRun carries everything produced for one app identifier
// through the pipeline. It is created when a run starts and discarded
// after export; only the exported artifacts survive.
type AnalysisRun struct {
	AppID     string
	StartedAt time.Time
	Metadata  *AppMetadata
	Reviews   []ReviewRecord
	Summary   *Summary
}

// ArtifactSet lists the files one export call produced. All paths
// share Dir and Timestamp. ChartPNG is empty when the dataset was
// empty and no chart was rendered.
type ArtifactSet struct {
	Dir         string
	Timestamp   string
	ReviewsCSV  string
	DetailsJSON string
	ChartPNG    string
}
