package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

func request(method, path string, payload interface{}) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return data, resp.StatusCode, err
}

func step(name, method, path string, payload interface{}) bool {
	color.Cyan("\n=== %s (%s %s) ===", name, method, path)
	data, status, err := request(method, path, payload)
	if err != nil {
		color.Red("FAIL: %v", err)
		return false
	}
	if status >= 400 {
		color.Red("FAIL: HTTP %d", status)
		prettyPrint(data)
		return false
	}
	color.Green("OK: HTTP %d", status)
	prettyPrint(data)
	return true
}

// Smoke test against a running instance. Exercises the happy path of every
// public endpoint group without requiring uploaded fixtures.
func main() {
	failed := 0

	checks := []struct {
		name    string
		method  string
		path    string
		payload interface{}
	}{
		{"Health", "GET", "/health", nil},
		{"Service Status", "GET", "/status/services", nil},
		{"Create Session", "POST", "/session/v1", map[string]string{"title": "Smoke Test Session"}},
		{"List Sessions", "GET", "/session/v1", nil},
		{"Active Session", "GET", "/session/v1/active", nil},
		{"List Documents", "GET", "/document/v1", nil},
		{"Arxiv Search", "GET", "/search/v1/arxiv?q=transformer+attention&max_results=2", nil},
		{"Quick Answer", "POST", "/research/v1/quick-answer", map[string]string{"query": "What is a vector database?"}},
		{"Research Query", "POST", "/research/v1/query", map[string]interface{}{
			"query":   "Summarize recent work on retrieval augmented generation",
			"use_web": false,
		}},
		{"Notifications", "GET", "/notifications/", nil},
	}

	for _, c := range checks {
		if !step(c.name, c.method, c.path, c.payload) {
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		color.Red("Smoke test finished with %d failure(s)", failed)
		os.Exit(1)
	}
	color.Green("Smoke test passed: all %d checks OK", len(checks))
}
