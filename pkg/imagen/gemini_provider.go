package imagen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ ImageProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   model,
		client: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
}

type geminiImagePart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiImageContent struct {
	Role  string            `json:"role,omitempty"`
	Parts []geminiImagePart `json:"parts"`
}

type geminiImageRequest struct {
	Contents         []geminiImageContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
		ImageConfig        struct {
			AspectRatio string `json:"aspectRatio,omitempty"`
		} `json:"imageConfig"`
	} `json:"generationConfig"`
}

type geminiImageResponse struct {
	Candidates []struct {
		Content geminiImageContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, size Size) ([]byte, error) {
	reqBody := geminiImageRequest{
		Contents: []geminiImageContent{
			{
				Role:  "user",
				Parts: []geminiImagePart{{Text: prompt}},
			},
		},
	}
	reqBody.GenerationConfig.ResponseModalities = []string{"TEXT", "IMAGE"}
	reqBody.GenerationConfig.ImageConfig.AspectRatio = size.AspectRatio()

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini image api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var imageResp geminiImageResponse
	if err := json.Unmarshal(bodyBytes, &imageResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if imageResp.Error != nil {
		return nil, fmt.Errorf("gemini image api returned error: %s", imageResp.Error.Message)
	}

	for _, cand := range imageResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("failed to decode image data: %w", err)
				}
				return data, nil
			}
		}
	}

	return nil, fmt.Errorf("no image data in gemini response")
}
