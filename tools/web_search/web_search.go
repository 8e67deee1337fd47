package web_search

import (
	"context"
	"errors"

	"newsticker/tools/web_search/brave"
	"newsticker/tools/web_search/models"
	"newsticker/tools/web_search/serper"
)

// WebSearcher discovers recent articles for a query. recency is in days;
// 1 restricts results to the last day.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int, sites []string, recency int) ([]models.Result, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
