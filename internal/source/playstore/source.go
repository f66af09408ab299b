package playstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"playstore_analyzer/internal/domain"
)

const (
	defaultBaseURL   = "https://play.google.com"
	detailsPath      = "/store/apps/details"
	batchExecutePath = "/_/PlayStoreUi/data/batchexecute"

	// Upstream caps one reviews page at 199 entries.
	maxPageSize = 199
)

// Sort selects the review ordering the store applies server-side.
type Sort int

const (
	SortMostRelevant Sort = 1
	SortNewest       Sort = 2
	SortRating       Sort = 3
)

// ParseSort maps a config string onto a Sort, defaulting to
// most-relevant, which is what the store's own review page uses.
func ParseSort(s string) Sort {
	switch strings.ToLower(s) {
	case "newest":
		return SortNewest
	case "rating":
		return SortRating
	default:
		return SortMostRelevant
	}
}

// Config holds Play Store client configuration.
type Config struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Client fetches app metadata and reviews from the Play Store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  baseURL,
		pageSize: pageSize,
		logger:   logger.With("source", "playstore"),
	}
}

var detailsDataRe = regexp.MustCompile(`AF_initDataCallback\(\{key: 'ds:5',[^{]*?data:([\s\S]*?), sideChannel:`)

// AppDetails fetches and parses the store listing for one app. A
// listing the store does not know yields NotFoundError.
func (c *Client) AppDetails(ctx context.Context, appID string) (*domain.AppMetadata, error) {
	detailsURL := fmt.Sprintf("%s%s?id=%s&hl=en&gl=us", c.baseURL, detailsPath, url.QueryEscape(appID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.NotFoundError{AppID: appID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	metadata, err := parseDetails(appID, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched app details",
		"app_id", appID,
		"title", metadata.Title,
		"reviews", metadata.Reviews,
	)

	return metadata, nil
}

func parseDetails(appID string, page []byte) (*domain.AppMetadata, error) {
	match := detailsDataRe.FindSubmatch(page)
	if match == nil {
		return nil, &domain.NotFoundError{AppID: appID}
	}

	var data interface{}
	if err := json.Unmarshal(match[1], &data); err != nil {
		return nil, fmt.Errorf("decode details payload: %w", err)
	}

	metadata := &domain.AppMetadata{
		AppID:    appID,
		Title:    digString(data, 1, 2, 0, 0),
		Installs: digString(data, 1, 2, 13, 0),
	}
	if score, ok := digNumber(data, 1, 2, 51, 0, 1); ok {
		metadata.Score = score
	}
	if reviews, ok := digNumber(data, 1, 2, 51, 3, 1); ok {
		metadata.Reviews = int64(reviews)
	}
	if updated, ok := digNumber(data, 1, 2, 145, 0, 1, 0); ok {
		metadata.Updated = time.Unix(int64(updated), 0)
	}

	if metadata.Title == "" {
		return nil, fmt.Errorf("details payload for %q has no title", appID)
	}

	return metadata, nil
}

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// AllReviews pages through the batchexecute endpoint with
// continuation tokens until the store stops returning them,
// mirroring how the review feed on the listing page loads. There is
// deliberately no retry; a failed page fails the fetch.
func (c *Client) AllReviews(ctx context.Context, appID, lang, country string, sort Sort) ([]domain.RawReview, error) {
	var all []domain.RawReview
	token := ""
	page := 0

	for {
		rows, next, err := c.fetchReviewPage(ctx, appID, lang, country, sort, token)
		if err != nil {
			return nil, fmt.Errorf("fetch reviews page %d: %w", page, err)
		}

		all = append(all, transformRows(rows)...)

		c.logger.Debug("fetched reviews page",
			"app_id", appID,
			"page", page,
			"reviews", len(rows),
			"total", len(all),
		)

		if next == "" || len(rows) == 0 {
			break
		}
		token = next
		page++
	}

	return all, nil
}

func (c *Client) fetchReviewPage(ctx context.Context, appID, lang, country string, sort Sort, token string) ([]interface{}, string, error) {
	endpoint := fmt.Sprintf("%s%s?hl=%s&gl=%s", c.baseURL, batchExecutePath, url.QueryEscape(lang), url.QueryEscape(country))

	form := url.Values{"f.req": {reviewsRequestBody(appID, c.pageSize, sort, token)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	return parseReviewsResponse(body)
}

// reviewsRequestBody builds the f.req form field. The inner argument
// is itself a JSON string inside the RPC envelope.
func reviewsRequestBody(appID string, pageSize int, sort Sort, token string) string {
	tokenLiteral := "null"
	if token != "" {
		quoted, _ := json.Marshal(token)
		tokenLiteral = string(quoted)
	}

	inner := fmt.Sprintf(`[null,null,[2,%d,[%d,null,%s],null,[]],["%s",7]]`,
		sort, pageSize, tokenLiteral, appID)

	envelope, _ := json.Marshal([]interface{}{
		[]interface{}{
			[]interface{}{"UsvDTd", inner, nil, "generic"},
		},
	})
	return string(envelope)
}

// parseReviewsResponse unwraps the anti-XSSI prefix and the double
// JSON encoding, returning the review rows and the continuation token
// for the next page (empty when the feed is exhausted).
func parseReviewsResponse(body []byte) ([]interface{}, string, error) {
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx:]
	}

	var envelope interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("decode response envelope: %w", err)
	}

	payload := digString(envelope, 0, 2)
	if payload == "" {
		return nil, "", nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, "", fmt.Errorf("decode reviews payload: %w", err)
	}

	rows, _ := dig(data, 0).([]interface{})
	return rows, digString(data, 1, 1), nil
}

func transformRows(rows []interface{}) []domain.RawReview {
	raw := make([]domain.RawReview, 0, len(rows))

	for _, row := range rows {
		review := domain.RawReview{
			ReviewID:   digString(row, rowReviewID),
			UserName:   digString(row, rowUserName, 0),
			AppVersion: digString(row, rowAppVersion),
		}
		if score, ok := digNumber(row, rowScore); ok {
			v := int(score)
			review.Score = &v
		}
		if content, ok := dig(row, rowContent).(string); ok {
			review.Content = &content
		}
		if at, ok := digNumber(row, rowAt, 0); ok {
			review.At = time.Unix(int64(at), 0)
		}
		if thumbs, ok := digNumber(row, rowThumbsUp); ok {
			review.ThumbsUp = int(thumbs)
		}

		raw = append(raw, review)
	}

	return raw
}
