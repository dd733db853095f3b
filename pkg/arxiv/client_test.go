package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/2401.12345v1</id>
    <title>Attention Is  All
 You Need</title>
    <summary>  We propose a new
 architecture.  </summary>
    <published>2024-01-15T18:00:00Z</published>
    <updated>2024-01-16T09:30:00Z</updated>
    <author><name>Jane Doe</name></author>
    <author><name>John Smith</name></author>
    <link href="http://arxiv.org/abs/2401.12345v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2401.12345v1" rel="related" type="application/pdf"/>
    <arxiv:primary_category term="cs.LG"/>
    <category term="cs.LG"/>
    <category term="cs.CL"/>
  </entry>
</feed>`

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:       serverURL,
		RatePerSecond: 1000, // no throttling in tests
		MaxResults:    10,
	})
}

func TestSearchParsesAtomFeed(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	papers, err := client.Search(context.Background(), "attention", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "all:attention" {
		t.Errorf("search_query = %q, want %q", gotQuery, "all:attention")
	}
	if len(papers) != 1 {
		t.Fatalf("papers = %d, want 1", len(papers))
	}

	p := papers[0]
	if p.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q (whitespace not collapsed)", p.Title)
	}
	if p.Summary != "We propose a new architecture." {
		t.Errorf("Summary = %q (whitespace not collapsed)", p.Summary)
	}
	if p.Authors != "Jane Doe, John Smith" {
		t.Errorf("Authors = %q", p.Authors)
	}
	if p.ArxivID != "2401.12345v1" {
		t.Errorf("ArxivID = %q", p.ArxivID)
	}
	if p.PDFURL != "http://arxiv.org/pdf/2401.12345v1" {
		t.Errorf("PDFURL = %q", p.PDFURL)
	}
	if p.Published != "2024-01-15" {
		t.Errorf("Published = %q", p.Published)
	}
	if p.PrimaryCategory != "cs.LG" {
		t.Errorf("PrimaryCategory = %q", p.PrimaryCategory)
	}
	if len(p.Categories) != 2 {
		t.Errorf("Categories = %v", p.Categories)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client := newTestClient("http://localhost:0")
	if _, err := client.Search(context.Background(), "   ", 5); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchClampsMaxResults(t *testing.T) {
	var gotMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("max_results")
		w.Write([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Search(context.Background(), "test", 9999); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotMax != "10" {
		t.Errorf("max_results = %q, want clamped to 10", gotMax)
	}
}

func TestGetByIDUsesIdListQuery(t *testing.T) {
	var gotIDList string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDList = r.URL.Query().Get("id_list")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	paper, err := client.GetByID(context.Background(), "2401.12345v1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if gotIDList != "2401.12345v1" {
		t.Errorf("id_list = %q, want %q", gotIDList, "2401.12345v1")
	}
	if paper == nil {
		t.Fatal("paper = nil, want parsed entry")
	}
	if paper.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", paper.Title)
	}
	if paper.ArxivID != "2401.12345v1" {
		t.Errorf("ArxivID = %q", paper.ArxivID)
	}
}

func TestGetByIDUnknownPaper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	paper, err := client.GetByID(context.Background(), "9999.00000")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if paper != nil {
		t.Errorf("paper = %+v, want nil for an empty feed", paper)
	}
}

func TestGetByIDRejectsEmptyID(t *testing.T) {
	client := newTestClient("http://localhost:0")
	if _, err := client.GetByID(context.Background(), "  "); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Search(context.Background(), "test", 5); err == nil {
		t.Error("expected error for non-200 response")
	}
}
