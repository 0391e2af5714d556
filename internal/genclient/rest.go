package genclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/shared"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 60 * time.Second
)

// RESTClient talks to the generative backend over plain HTTP for the paths
// the SDK does not cover: grounded discovery, inline image generation and
// editing, and long-running video-synthesis jobs.
type RESTClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	discoveryModel string
	imageModel     string
	videoModel     string

	log zerolog.Logger
}

// NewRESTClient creates a new REST transport client.
func NewRESTClient(cfg *config.Config, log zerolog.Logger) *RESTClient {
	return &RESTClient{
		apiKey:         cfg.GeminiAPIKey,
		baseURL:        defaultBaseURL,
		httpClient:     &http.Client{Timeout: requestTimeout},
		discoveryModel: cfg.DiscoveryModel,
		imageModel:     cfg.ImageModel,
		videoModel:     cfg.VideoModel,
		log:            log.With().Str("component", "genclient").Logger(),
	}
}

// --- Request/response shapes for the generative REST API ---

type restPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *restInlineData `json:"inlineData,omitempty"`
}

type restInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type restTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type restToolConfig struct {
	RetrievalConfig *struct {
		LatLng restLatLng `json:"latLng"`
	} `json:"retrievalConfig,omitempty"`
}

type restGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []restContent         `json:"contents"`
	Tools            []restTool            `json:"tools,omitempty"`
	ToolConfig       *restToolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig *restGenerationConfig `json:"generationConfig,omitempty"`
}

type groundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []restPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web  *groundingSource `json:"web"`
				Maps *groundingSource `json:"maps"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type videoJobRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int    `json:"sampleCount"`
		Resolution  string `json:"resolution"`
		AspectRatio string `json:"aspectRatio"`
	} `json:"parameters"`
}

type videoOperation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Response struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response"`
}

// DiscoverGrounded issues a search-grounded generation call and collects the
// free-text answer plus the citations the backend consulted. Citations
// missing both a web and a maps URI are discarded.
func (c *RESTClient) DiscoverGrounded(ctx context.Context, prompt string, coords *contracts.Coordinates) (GroundedAnswer, error) {
	start := time.Now()

	req := generateRequest{
		Contents: []restContent{{Parts: []restPart{{Text: prompt}}}},
		Tools:    []restTool{{GoogleSearch: &struct{}{}}},
	}
	if coords != nil {
		req.ToolConfig = &restToolConfig{
			RetrievalConfig: &struct {
				LatLng restLatLng `json:"latLng"`
			}{LatLng: restLatLng{Latitude: coords.Latitude, Longitude: coords.Longitude}},
		}
	}

	var resp generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.discoveryModel, c.apiKey)
	if err := c.doJSON(ctx, url, req, &resp); err != nil {
		return GroundedAnswer{}, fmt.Errorf("grounded discovery call failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return GroundedAnswer{}, fmt.Errorf("no content found in discovery response")
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}

	var citations []contracts.GroundingLink
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		src := chunk.Web
		if src == nil || src.URI == "" {
			src = chunk.Maps
		}
		if src == nil || src.URI == "" {
			continue
		}
		citations = append(citations, contracts.GroundingLink{URI: src.URI, Title: src.Title})
	}

	c.log.Debug().
		Int("citations", len(citations)).
		Dur("latency", time.Since(start)).
		Msg("grounded discovery completed")

	return GroundedAnswer{
		Text:      text.String(),
		Citations: citations,
		Meta: shared.CallMeta{
			Component: "discovery",
			Latency:   time.Since(start),
			Usage: shared.TokenUsage{
				Model:            c.discoveryModel,
				PromptTokens:     resp.UsageMetadata.PromptTokenCount,
				CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
				TotalTokens:      resp.UsageMetadata.TotalTokenCount,
			},
		},
	}, nil
}

// GenerateImage issues a single generation call expecting an inline image
// payload. A response without one yields a zero InlineImage, not an error.
func (c *RESTClient) GenerateImage(ctx context.Context, prompt string) (InlineImage, error) {
	req := generateRequest{
		Contents:         []restContent{{Parts: []restPart{{Text: prompt}}}},
		GenerationConfig: &restGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}
	return c.callImageModel(ctx, req)
}

// EditImage re-submits an existing inline payload together with a
// natural-language modification instruction.
func (c *RESTClient) EditImage(ctx context.Context, img InlineImage, instruction string) (InlineImage, error) {
	req := generateRequest{
		Contents: []restContent{{Parts: []restPart{
			{Text: instruction},
			{InlineData: &restInlineData{
				MIMEType: img.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(img.Data),
			}},
		}}},
		GenerationConfig: &restGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}
	return c.callImageModel(ctx, req)
}

func (c *RESTClient) callImageModel(ctx context.Context, req generateRequest) (InlineImage, error) {
	var resp generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.imageModel, c.apiKey)
	if err := c.doJSON(ctx, url, req, &resp); err != nil {
		return InlineImage{}, fmt.Errorf("image generation call failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return InlineImage{}, fmt.Errorf("failed to decode inline image payload: %w", err)
			}
			return InlineImage{MIMEType: p.InlineData.MIMEType, Data: data}, nil
		}
	}

	c.log.Warn().Msg("image response carried no inline payload")
	return InlineImage{}, nil
}

// SubmitVideoJob starts a long-running video-synthesis job and returns the
// provider-opaque operation name used for polling.
func (c *RESTClient) SubmitVideoJob(ctx context.Context, prompt string) (string, error) {
	var req videoJobRequest
	req.Instances = append(req.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	req.Parameters.SampleCount = 1
	req.Parameters.Resolution = "720p"
	req.Parameters.AspectRatio = "16:9"

	var op videoOperation
	url := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", c.baseURL, c.videoModel, c.apiKey)
	if err := c.doJSON(ctx, url, req, &op); err != nil {
		return "", fmt.Errorf("video job submission failed: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("video job submission returned no operation name")
	}
	return op.Name, nil
}

// PollVideoJob fetches the current status of a video-synthesis job.
func (c *RESTClient) PollVideoJob(ctx context.Context, jobName string) (VideoJobStatus, error) {
	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, jobName, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VideoJobStatus{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return VideoJobStatus{}, fmt.Errorf("failed to poll video job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return VideoJobStatus{}, fmt.Errorf("video poll error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var op videoOperation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return VideoJobStatus{}, fmt.Errorf("failed to decode video job status: %w", err)
	}

	if op.Error != nil {
		return VideoJobStatus{}, fmt.Errorf("video job failed: code=%d %s", op.Error.Code, op.Error.Message)
	}
	if !op.Done {
		return VideoJobStatus{Done: false}, nil
	}

	samples := op.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 || samples[0].Video.URI == "" {
		return VideoJobStatus{}, fmt.Errorf("video job completed without an artifact locator")
	}
	return VideoJobStatus{Done: true, ArtifactURI: samples[0].Video.URI}, nil
}

// SignArtifactURI appends the API key an artifact download requires.
func (c *RESTClient) SignArtifactURI(uri string) string {
	if uri == "" {
		return uri
	}
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + c.apiKey
}

// doJSON posts a JSON payload and decodes the JSON response.
func (c *RESTClient) doJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
