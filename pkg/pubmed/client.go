package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client talks to the NCBI Entrez E-utilities. Without an API key NCBI
// allows 3 requests per second, so every call goes through a limiter.
type Client struct {
	baseURL string
	email   string
	limiter *rate.Limiter
	client  *http.Client
}

func NewClient(email string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		email:   email,
		limiter: rate.NewLimiter(rate.Limit(3), 3),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Article is a parsed PubMed record.
type Article struct {
	PMID     string
	Title    string
	Authors  []string
	Year     int
	Abstract string
}

// Search runs an esearch query against the pubmed database and returns
// matching PMIDs, newest first.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("sort", "relevance")

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result eSearchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse esearch response: %w", err)
	}
	return result.IdList.Ids, nil
}

// Fetch retrieves full records for the given PMIDs via efetch.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	return ParseArticles(body)
}

// FetchOne is a convenience wrapper for a single PMID.
func (c *Client) FetchOne(ctx context.Context, pmid string) (*Article, error) {
	articles, err := c.Fetch(ctx, []string{pmid})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("pubmed article %s not found", pmid)
	}
	return &articles[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("tool", "medical-mcq-writer")
	if c.email != "" {
		params.Set("email", c.email)
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entrez request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entrez error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
