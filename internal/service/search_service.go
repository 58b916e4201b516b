package service

import (
	"context"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/pkg/tavily"
)

type ISearchService interface {
	WebSearch(ctx context.Context, req *dto.WebSearchRequest) (*dto.WebSearchResponse, error)
}

type searchService struct {
	tavilyClient *tavily.Client
}

func NewSearchService(tavilyClient *tavily.Client) ISearchService {
	return &searchService{
		tavilyClient: tavilyClient,
	}
}

// WebSearch runs a general web search for background reading while
// reviewing questions. It supplements PubMed, never feeds the knowledge
// base directly.
func (s *searchService) WebSearch(ctx context.Context, req *dto.WebSearchRequest) (*dto.WebSearchResponse, error) {
	result, err := s.tavilyClient.Search(ctx, req.Query, req.MaxResults)
	if err != nil {
		return nil, err
	}

	res := &dto.WebSearchResponse{
		Answer:  result.Answer,
		Results: make([]dto.WebSearchResultResponse, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		res.Results = append(res.Results, dto.WebSearchResultResponse{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
			Score:   r.Score,
		})
	}
	return res, nil
}
