package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type generateRequest struct {
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
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generateJSON(ctx context.Context, operation, prompt string) (string, error) {
	return c.generate(ctx, operation, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:      0,
			ResponseMimeType: "application/json",
		},
	})
}

func (c *Client) generateText(ctx context.Context, operation, prompt string, temperature float64) (string, error) {
	return c.generate(ctx, operation, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature: temperature,
		},
	})
}

func (c *Client) generate(ctx context.Context, operation string, payload generateRequest) (string, error) {
	var response generateResponse

	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, payload, &response, operation)
	}

	start := time.Now()
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "gemini."+operation, call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if c.observer != nil {
		c.observer(operation, time.Since(start), err)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini %s: empty candidate response", operation)
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) postJSON(ctx context.Context, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
