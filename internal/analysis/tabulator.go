package analysis

import (
	"playstore_analyzer/internal/domain"
)

// Tabulate converts raw reviews into records annotated with their
// content length. Input order is preserved and the output always has
// the same length as the input. A record without a rating fails with
// DataShapeError; absent content is treated as empty text (length 0).
func Tabulate(raw []domain.RawReview) ([]domain.ReviewRecord, error) {
	records := make([]domain.ReviewRecord, 0, len(raw))

	for i, r := range raw {
		if r.Score == nil {
			return nil, &domain.DataShapeError{Index: i, Field: "rating"}
		}

		content := ""
		if r.Content != nil {
			content = *r.Content
		}

		records = append(records, domain.ReviewRecord{
			ReviewID:   r.ReviewID,
			UserName:   r.UserName,
			Score:      *r.Score,
			Content:    content,
			At:         r.At,
			Length:     domain.ContentLength(content),
			ThumbsUp:   r.ThumbsUp,
			AppVersion: r.AppVersion,
		})
	}

	return records, nil
}
