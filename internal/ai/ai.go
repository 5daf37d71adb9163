// internal/ai/ai.go
//
// External themed word source.
// Asks a generative-language API for exactly 25 distinct words around a theme,
// to be used verbatim as a board. The contract with callers is strict:
// anything short of a clean, exactly-sized, duplicate-free list is an error,
// and callers respond to every error the same way — silently fall back to the
// deterministic dictionary board. Try once; no retries.
//
// Environment variables:
//   AI_API_KEY — API key; the source is unavailable without it.
//   AI_API_URL — endpoint override (defaults to the Gemini generateContent URL).

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/robalobadob/codewords/internal/game"
)

const defaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// ErrUnavailable means no API key is configured; callers should use the
// dictionary path without logging noise.
var ErrUnavailable = errors.New("ai: no API key configured")

// Client calls the word-generation API.
type Client struct {
	apiKey string
	apiURL string
	http   *http.Client
}

// NewClientFromEnv builds a client from AI_API_KEY / AI_API_URL.
func NewClientFromEnv() *Client {
	url := os.Getenv("AI_API_URL")
	if url == "" {
		url = defaultAPIURL
	}
	return &Client{
		apiKey: os.Getenv("AI_API_KEY"),
		apiURL: url,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Available reports whether the source is configured at all.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// --- wire types (generateContent subset) -----------------------------------

type genRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateWords requests exactly game.TotalCards distinct words for a theme.
// Every failure mode — missing key, transport error, non-200, malformed JSON,
// wrong count, duplicates — comes back as an error for the caller to treat as
// "use the fallback".
func (c *Client) GenerateWords(ctx context.Context, theme string) ([]string, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	prompt := fmt.Sprintf(
		"Generate a list of exactly %d distinct, simple, common single-word nouns related to the theme: %q. "+
			"Return strictly a JSON array of strings and nothing else.",
		game.TotalCards, theme)

	body, err := json.Marshal(genRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai: unexpected status %d", res.StatusCode)
	}

	var gr genResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("ai: empty response")
	}

	var words []string
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), &words); err != nil {
		return nil, fmt.Errorf("ai: parse word list: %w", err)
	}
	return normalize(words)
}

// normalize trims and validates the returned list against the contract:
// exactly game.TotalCards non-empty, distinct words.
func normalize(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			return nil, errors.New("ai: empty word in list")
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("ai: duplicate word %q", w)
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	if len(out) != game.TotalCards {
		return nil, fmt.Errorf("ai: got %d words, want %d", len(out), game.TotalCards)
	}
	return out, nil
}
