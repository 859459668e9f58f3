package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// HTTPSource fetches mentions from an upstream aggregation API that returns
// a JSON array of mentions. One HTTPSource serves one source kind; the
// upstream endpoint receives the source, brand, keywords and window as query
// parameters.
type HTTPSource struct {
	source  domain.Source
	baseURL string
	client  *http.Client
}

func NewHTTPSource(source domain.Source, baseURL string) *HTTPSource {
	return &HTTPSource{
		source:  source,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSource) Source() domain.Source {
	return s.source
}

func (s *HTTPSource) Fetch(ctx context.Context, query domain.MentionQuery) ([]domain.Mention, error) {
	params := url.Values{}
	params.Set("source", string(s.source))
	params.Set("brand", query.Brand)
	if len(query.Keywords) > 0 {
		params.Set("keywords", strings.Join(query.Keywords, ","))
	}
	if !query.Since.IsZero() {
		params.Set("since", query.Since.UTC().Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/mentions?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mention request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mention request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mention API returned status %d", resp.StatusCode)
	}

	var mentions []domain.Mention
	if err := json.NewDecoder(resp.Body).Decode(&mentions); err != nil {
		return nil, fmt.Errorf("failed to decode mentions: %w", err)
	}

	// Upstream payloads may omit the source field; stamp it so aggregation
	// can group correctly.
	for i := range mentions {
		if mentions[i].Source == "" {
			mentions[i].Source = s.source
		}
	}
	return mentions, nil
}
