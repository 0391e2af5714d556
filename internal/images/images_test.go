package images

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-fitness-coach/internal/genclient"

	"github.com/rs/zerolog"
)

type mockImageGenerator struct {
	generated  genclient.InlineImage
	edited     genclient.InlineImage
	err        error
	lastPrompt string
	lastInput  genclient.InlineImage
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, prompt string) (genclient.InlineImage, error) {
	m.lastPrompt = prompt
	return m.generated, m.err
}

func (m *mockImageGenerator) EditImage(ctx context.Context, img genclient.InlineImage, instruction string) (genclient.InlineImage, error) {
	m.lastInput = img
	m.lastPrompt = instruction
	return m.edited, m.err
}

func TestSynthesizeImage(t *testing.T) {
	ctx := context.Background()

	mock := &mockImageGenerator{generated: genclient.InlineImage{MIMEType: "image/png", Data: []byte("fake-png")}}
	p := NewPipeline(mock, zerolog.Nop())

	locator, err := p.SynthesizeImage(ctx, "Grilled Salmon")
	if err != nil {
		t.Fatalf("SynthesizeImage failed: %v", err)
	}
	if !strings.HasPrefix(locator, "data:image/png;base64,") {
		t.Errorf("Expected data URI locator, got %q", locator)
	}
	if !strings.Contains(mock.lastPrompt, "Grilled Salmon") {
		t.Errorf("Expected prompt to embed the subject, got %q", mock.lastPrompt)
	}
}

func TestSynthesizeImageWithoutPayload(t *testing.T) {
	ctx := context.Background()

	p := NewPipeline(&mockImageGenerator{}, zerolog.Nop())
	locator, err := p.SynthesizeImage(ctx, "Oatmeal")
	if err != nil {
		t.Fatalf("Expected missing payload to be non-fatal, got %v", err)
	}
	if locator != "" {
		t.Errorf("Expected empty locator, got %q", locator)
	}
}

func TestEditImage(t *testing.T) {
	ctx := context.Background()

	original := "data:image/png;base64,b3JpZ2luYWw="
	mock := &mockImageGenerator{edited: genclient.InlineImage{MIMEType: "image/png", Data: []byte("edited")}}
	p := NewPipeline(mock, zerolog.Nop())

	locator, err := p.EditImage(ctx, original, "make it brighter")
	if err != nil {
		t.Fatalf("EditImage failed: %v", err)
	}
	if locator == original {
		t.Error("Expected a new locator after a successful edit")
	}
	if mock.lastInput.MIMEType != "image/png" || string(mock.lastInput.Data) != "original" {
		t.Errorf("Expected original payload decomposed and forwarded, got %+v", mock.lastInput)
	}
}

func TestEditImageWithoutPayloadKeepsOriginal(t *testing.T) {
	ctx := context.Background()

	original := "data:image/png;base64,b3JpZ2luYWw="
	p := NewPipeline(&mockImageGenerator{}, zerolog.Nop())

	locator, err := p.EditImage(ctx, original, "make it brighter")
	if err != nil {
		t.Fatalf("EditImage failed: %v", err)
	}
	if locator != original {
		t.Errorf("Expected original locator unchanged on failed edit, got %q", locator)
	}
}

func TestEditImageRejectsBadLocator(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(&mockImageGenerator{}, zerolog.Nop())

	if _, err := p.EditImage(ctx, "https://not-a-data-uri.example/img.png", "brighter"); err == nil {
		t.Fatal("Expected error for a non data-URI locator")
	}
	if _, err := p.EditImage(ctx, "data:image/png;base64,%%%", "brighter"); err == nil {
		t.Fatal("Expected error for an undecodable payload")
	}
}

func TestEditImageTransportFailure(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(&mockImageGenerator{err: errors.New("backend down")}, zerolog.Nop())

	if _, err := p.EditImage(ctx, "data:image/png;base64,b3JpZ2luYWw=", "brighter"); err == nil {
		t.Fatal("Expected transport error surfaced")
	}
}
