package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"ai-fitness-coach/internal/genclient"

	"github.com/rs/zerolog"
)

// Pipeline produces and edits illustrative meal images. Locators are data
// URIs so the consumer can render them without another fetch.
type Pipeline struct {
	gen genclient.ImageGenerator
	log zerolog.Logger
}

// NewPipeline creates a new image Pipeline.
func NewPipeline(gen genclient.ImageGenerator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		gen: gen,
		log: log.With().Str("component", "images").Logger(),
	}
}

// SynthesizeImage generates a photographic image for the subject and returns
// its locator. A response without an inline payload yields an empty locator:
// the visual is unavailable, the page is not an error.
func (p *Pipeline) SynthesizeImage(ctx context.Context, subject string) (string, error) {
	prompt := fmt.Sprintf(
		"A professional food photograph of %q, plated on a clean white dish, soft natural lighting, shallow depth of field, appetizing, high resolution.",
		subject,
	)

	img, err := p.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize image for %q: %w", subject, err)
	}
	if img.IsZero() {
		p.log.Warn().Str("subject", subject).Msg("image synthesis returned no payload")
		return "", nil
	}
	return encodeLocator(img), nil
}

// EditImage applies a natural-language modification to an existing locator
// and returns the new one. If the edit response carries no payload the
// original locator is returned unchanged: the subject already had a valid
// image, so a failed edit is a no-op, not a loss.
func (p *Pipeline) EditImage(ctx context.Context, locator, instruction string) (string, error) {
	img, err := decodeLocator(locator)
	if err != nil {
		return "", fmt.Errorf("cannot edit image: %w", err)
	}

	edited, err := p.gen.EditImage(ctx, img, instruction)
	if err != nil {
		return "", fmt.Errorf("failed to edit image: %w", err)
	}
	if edited.IsZero() {
		p.log.Warn().Str("instruction", instruction).Msg("image edit returned no payload, keeping original")
		return locator, nil
	}
	return encodeLocator(edited), nil
}

func encodeLocator(img genclient.InlineImage) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// decodeLocator splits a data URI back into its media type and payload.
func decodeLocator(locator string) (genclient.InlineImage, error) {
	rest, ok := strings.CutPrefix(locator, "data:")
	if !ok {
		return genclient.InlineImage{}, fmt.Errorf("locator is not a data URI")
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return genclient.InlineImage{}, fmt.Errorf("locator is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return genclient.InlineImage{}, fmt.Errorf("failed to decode locator payload: %w", err)
	}
	return genclient.InlineImage{MIMEType: mimeType, Data: data}, nil
}
