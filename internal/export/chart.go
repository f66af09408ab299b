package export

import (
	"os"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"playstore_analyzer/internal/domain"
)

// writeChart renders the distribution as a bar chart, one bar per
// rating value 1-5 ascending, bar height = review count. Ratings
// that never occur render as zero-height bars so the axis always
// spans the full scale.
func (e *Exporter) writeChart(path string, dist domain.RatingDistribution) error {
	bars := make([]chart.Value, 0, 5)
	maxCount := 0
	for rating := 1; rating <= 5; rating++ {
		count := dist[rating]
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Value: float64(count),
			Label: strconv.Itoa(rating),
		})
	}

	graph := chart.BarChart{
		Title:    "Ratings Distribution",
		Width:    1000,
		Height:   600,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		YAxis: chart.YAxis{
			Name: "Number of Reviews",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(maxCount),
			},
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	return nil
}
