package dto

type WebSearchRequest struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=20"`
}

type WebSearchResultResponse struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

type WebSearchResponse struct {
	Answer  string                    `json:"answer,omitempty"`
	Results []WebSearchResultResponse `json:"results"`
}
