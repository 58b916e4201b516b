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

type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ ImageProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
}

type openaiImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type openaiImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, size Size) ([]byte, error) {
	reqBody := openaiImageRequest{
		Model:          p.model,
		Prompt:         prompt,
		N:              1,
		Size:           size.Pixels(),
		ResponseFormat: "b64_json",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/images/generations", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai image api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var imageResp openaiImageResponse
	if err := json.Unmarshal(bodyBytes, &imageResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if imageResp.Error != nil {
		return nil, fmt.Errorf("openai image api returned error: %s", imageResp.Error.Message)
	}

	if len(imageResp.Data) == 0 || imageResp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image data in openai response")
	}

	data, err := base64.StdEncoding.DecodeString(imageResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return data, nil
}
