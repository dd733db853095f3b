package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Paper is a single arXiv search result.
type Paper struct {
	Title           string   `json:"title"`
	Authors         string   `json:"authors"`
	Summary         string   `json:"summary"`
	Published       string   `json:"published"`
	Updated         string   `json:"updated"`
	ArxivID         string   `json:"arxiv_id"`
	PDFURL          string   `json:"pdf_url"`
	PrimaryCategory string   `json:"primary_category"`
	Categories      []string `json:"categories"`
	DOI             string   `json:"doi,omitempty"`
	JournalRef      string   `json:"journal_ref,omitempty"`
}

// ClientConfig tunes the arXiv API client.
type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RatePerSecond  float64 // arXiv asks for no more than 1 request per 3 seconds
	MaxResults     int
}

func DefaultConfig() ClientConfig {
	return ClientConfig{
		BaseURL:        "http://export.arxiv.org/api/query",
		RequestTimeout: 30 * time.Second,
		RatePerSecond:  0.34,
		MaxResults:     5,
	}
}

type Client struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://export.arxiv.org/api/query"
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if config.RatePerSecond <= 0 {
		config.RatePerSecond = 0.34
	}
	if config.MaxResults <= 0 {
		config.MaxResults = 5
	}
	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSecond), 1),
	}
}

// --- Atom feed structures ---

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Authors    []atomAuthor   `xml:"author"`
	Links      []atomLink     `xml:"link"`
	Categories []atomCategory `xml:"category"`
	Primary    atomCategory   `xml:"http://arxiv.org/schemas/atom primary_category"`
	DOI        string         `xml:"http://arxiv.org/schemas/atom doi"`
	JournalRef string         `xml:"http://arxiv.org/schemas/atom journal_ref"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// Search queries the arXiv Atom API, honoring the client rate limit.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arxiv query")
	}
	if maxResults <= 0 || maxResults > c.config.MaxResults {
		maxResults = c.config.MaxResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	feed, err := c.fetchFeed(ctx, params)
	if err != nil {
		return nil, err
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, entryToPaper(entry))
	}
	return papers, nil
}

// GetByID fetches a single paper through the id_list query. Returns nil
// without error when arXiv has no entry for the id.
func (c *Client) GetByID(ctx context.Context, arxivID string) (*Paper, error) {
	if strings.TrimSpace(arxivID) == "" {
		return nil, fmt.Errorf("empty arxiv id")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("id_list", arxivID)
	params.Set("max_results", "1")

	feed, err := c.fetchFeed(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	paper := entryToPaper(feed.Entries[0])
	return &paper, nil
}

func (c *Client) fetchFeed(ctx context.Context, params url.Values) (*atomFeed, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}
	return &feed, nil
}

func entryToPaper(entry atomEntry) Paper {
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, a.Name)
	}

	categories := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		categories = append(categories, c.Term)
	}

	var pdfURL string
	for _, link := range entry.Links {
		if link.Title == "pdf" || link.Type == "application/pdf" {
			pdfURL = link.Href
			break
		}
	}

	// entry.ID looks like http://arxiv.org/abs/2401.12345v1
	arxivID := entry.ID
	if idx := strings.LastIndex(entry.ID, "/abs/"); idx >= 0 {
		arxivID = entry.ID[idx+len("/abs/"):]
	}

	return Paper{
		Title:           cleanWhitespace(entry.Title),
		Authors:         strings.Join(authors, ", "),
		Summary:         cleanWhitespace(entry.Summary),
		Published:       formatDate(entry.Published),
		Updated:         formatDate(entry.Updated),
		ArxivID:         arxivID,
		PDFURL:          pdfURL,
		PrimaryCategory: entry.Primary.Term,
		Categories:      categories,
		DOI:             entry.DOI,
		JournalRef:      entry.JournalRef,
	}
}

func cleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
