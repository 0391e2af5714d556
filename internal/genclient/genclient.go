package genclient

import (
	"context"

	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

// StructuredResponse contains the raw JSON text of a schema-constrained
// generation call plus operational metadata.
type StructuredResponse struct {
	Text string
	Meta shared.CallMeta
}

// StructuredGenerator issues a schema-constrained generation call and returns
// raw text expected to parse as JSON. Validation happens in the caller; the
// generator owns no business logic.
type StructuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (StructuredResponse, error)
}

// GroundedAnswer is the outcome of a retrieval-grounded discovery call:
// free text plus the citations the backend consulted.
type GroundedAnswer struct {
	Text      string
	Citations []contracts.GroundingLink
	Meta      shared.CallMeta
}

// GroundedGenerator issues a discovery call with search grounding enabled,
// optionally biased by the caller's coordinates.
type GroundedGenerator interface {
	DiscoverGrounded(ctx context.Context, prompt string, coords *contracts.Coordinates) (GroundedAnswer, error)
}

// InlineImage is a binary image payload returned inline by the backend.
// A zero value means the backend produced no image.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// IsZero reports whether the backend returned no payload.
func (i InlineImage) IsZero() bool {
	return len(i.Data) == 0
}

// ImageGenerator issues single round-trip image-generation and image-edit
// calls returning inline binary payloads.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (InlineImage, error)
	EditImage(ctx context.Context, img InlineImage, instruction string) (InlineImage, error)
}

// VideoJobStatus is one observation of a long-running synthesis job.
type VideoJobStatus struct {
	Done        bool
	ArtifactURI string
}

// MediaJobClient submits and polls long-running media-synthesis jobs.
// SignArtifactURI appends the access credential a resolved artifact locator
// needs to be fetchable by the consumer.
type MediaJobClient interface {
	SubmitVideoJob(ctx context.Context, prompt string) (jobName string, err error)
	PollVideoJob(ctx context.Context, jobName string) (VideoJobStatus, error)
	SignArtifactURI(uri string) string
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
