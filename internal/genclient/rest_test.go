package genclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/contracts"

	"github.com/rs/zerolog"
)

func newTestRESTClient(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewRESTClient(&config.Config{
		GeminiAPIKey:   "test-key",
		DiscoveryModel: "gemini-test",
		ImageModel:     "gemini-image-test",
		VideoModel:     "veo-test",
	}, zerolog.Nop())
	c.baseURL = server.URL
	c.httpClient = &http.Client{Timeout: 5 * time.Second}
	return c
}

func TestDiscoverGrounded(t *testing.T) {
	var gotBody map[string]any
	c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "Gym A is great. "}, {"text": "Gym B too."}},
				},
				"groundingMetadata": map[string]any{
					"groundingChunks": []map[string]any{
						{"web": map[string]any{"uri": "https://web.example/a", "title": "Gym A"}},
						{"maps": map[string]any{"uri": "https://maps.example/b", "title": "Gym B"}},
						{"web": map[string]any{"title": "no uri at all"}},
					},
				},
			}},
		})
	})

	answer, err := c.DiscoverGrounded(context.Background(), "find gyms", &contracts.Coordinates{Latitude: 38.7, Longitude: -9.1})
	if err != nil {
		t.Fatalf("DiscoverGrounded failed: %v", err)
	}
	if answer.Text != "Gym A is great. Gym B too." {
		t.Errorf("Unexpected answer text: %q", answer.Text)
	}
	if len(answer.Citations) != 2 {
		t.Fatalf("Expected 2 citations after filtering, got %d", len(answer.Citations))
	}
	if answer.Citations[1].URI != "https://maps.example/b" {
		t.Errorf("Expected maps citation retained, got %q", answer.Citations[1].URI)
	}

	// Search grounding and the geo bias must ride on the request.
	if _, ok := gotBody["tools"]; !ok {
		t.Error("Expected tools in the outbound request")
	}
	if _, ok := gotBody["toolConfig"]; !ok {
		t.Error("Expected toolConfig with retrieval bias in the outbound request")
	}
}

func TestGenerateImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{
						{"text": "Here is your image."},
						{"inlineData": map[string]any{"mimeType": "image/png", "data": payload}},
					},
				},
			}},
		})
	})

	img, err := c.GenerateImage(context.Background(), "a salmon dish")
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if img.MIMEType != "image/png" || string(img.Data) != "png-bytes" {
		t.Errorf("Unexpected image: %+v", img)
	}
}

func TestGenerateImageWithoutPayload(t *testing.T) {
	c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "Sorry, no image."}},
				},
			}},
		})
	})

	img, err := c.GenerateImage(context.Background(), "a salmon dish")
	if err != nil {
		t.Fatalf("Expected missing payload to be non-fatal, got %v", err)
	}
	if !img.IsZero() {
		t.Errorf("Expected zero image, got %+v", img)
	}
}

func TestVideoJobLifecycle(t *testing.T) {
	polls := 0
	c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "predictLongRunning") {
			json.NewEncoder(w).Encode(map[string]any{"name": "models/veo-test/operations/op-1"})
			return
		}
		polls++
		if polls < 2 {
			json.NewEncoder(w).Encode(map[string]any{"name": "models/veo-test/operations/op-1", "done": false})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"name": "models/veo-test/operations/op-1",
			"done": true,
			"response": map[string]any{
				"generateVideoResponse": map[string]any{
					"generatedSamples": []map[string]any{
						{"video": map[string]any{"uri": "https://videos.example/clip.mp4"}},
					},
				},
			},
		})
	})

	ctx := context.Background()
	jobName, err := c.SubmitVideoJob(ctx, "bench press demo")
	if err != nil {
		t.Fatalf("SubmitVideoJob failed: %v", err)
	}
	if jobName != "models/veo-test/operations/op-1" {
		t.Errorf("Unexpected job name: %q", jobName)
	}

	status, err := c.PollVideoJob(ctx, jobName)
	if err != nil {
		t.Fatalf("PollVideoJob failed: %v", err)
	}
	if status.Done {
		t.Error("Expected job still running on first poll")
	}

	status, err = c.PollVideoJob(ctx, jobName)
	if err != nil {
		t.Fatalf("PollVideoJob failed: %v", err)
	}
	if !status.Done || status.ArtifactURI != "https://videos.example/clip.mp4" {
		t.Errorf("Unexpected final status: %+v", status)
	}
}

func TestPollVideoJobBackendError(t *testing.T) {
	c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":  "models/veo-test/operations/op-1",
			"done":  true,
			"error": map[string]any{"code": 13, "message": "synthesis failed"},
		})
	})

	if _, err := c.PollVideoJob(context.Background(), "models/veo-test/operations/op-1"); err == nil {
		t.Fatal("Expected backend error surfaced")
	}
}

func TestSignArtifactURI(t *testing.T) {
	c := NewRESTClient(&config.Config{GeminiAPIKey: "test-key"}, zerolog.Nop())

	if got := c.SignArtifactURI("https://videos.example/clip.mp4"); got != "https://videos.example/clip.mp4?key=test-key" {
		t.Errorf("Unexpected signed URI: %q", got)
	}
	if got := c.SignArtifactURI("https://videos.example/clip.mp4?alt=media"); got != "https://videos.example/clip.mp4?alt=media&key=test-key" {
		t.Errorf("Unexpected signed URI: %q", got)
	}
	if got := c.SignArtifactURI(""); got != "" {
		t.Errorf("Expected empty URI passthrough, got %q", got)
	}
}
