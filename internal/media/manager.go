package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-fitness-coach/internal/genclient"

	"github.com/rs/zerolog"
)

// ErrPollBudgetExceeded is returned when a job is still unresolved after the
// configured maximum number of status checks. The backend reports no terminal
// failure in this case; bounding the wait is this layer's policy.
var ErrPollBudgetExceeded = errors.New("media synthesis did not complete within the poll budget")

// Fixed narration milestones keyed by poll count. The text is cosmetic; the
// monotonic ordering and the terminal completion message are the contract.
type milestone struct {
	poll    int
	message string
}

var milestones = []milestone{
	{poll: 0, message: "Briefing the studio on your exercise..."},
	{poll: 1, message: "Rendering the first frames..."},
	{poll: 3, message: "Refining motion and lighting..."},
	{poll: 7, message: "Polishing the final cut..."},
}

const completionMessage = "Your demonstration video is ready."

// Manager drives long-running media-synthesis jobs: submit once, poll on a
// fixed interval, narrate progress, resolve to a signed artifact locator or
// a terminal failure. It never retries a failed backend call; retry is the
// caller's decision.
type Manager struct {
	jobs     genclient.MediaJobClient
	interval time.Duration
	maxPolls int
	log      zerolog.Logger
}

// NewManager creates a new media operation Manager. interval must be
// constant and non-zero; maxPolls bounds the wait for jobs the backend
// never resolves.
func NewManager(jobs genclient.MediaJobClient, interval time.Duration, maxPolls int, log zerolog.Logger) *Manager {
	return &Manager{
		jobs:     jobs,
		interval: interval,
		maxPolls: maxPolls,
		log:      log.With().Str("component", "media").Logger(),
	}
}

// Submit starts a synthesis job for the given subject and returns its
// handle. The poll loop runs until resolution, the poll budget, or ctx
// cancellation, whichever comes first.
func (m *Manager) Submit(ctx context.Context, subject string, onProgress ProgressFunc) (*Operation, error) {
	jobName, err := m.jobs.SubmitVideoJob(ctx, buildVideoPrompt(subject))
	if err != nil {
		return nil, fmt.Errorf("failed to submit media job: %w", err)
	}

	op := newOperation(jobName, onProgress)
	m.log.Info().Str("operation", op.ID).Str("job", jobName).Str("subject", subject).Msg("media job submitted")

	op.notifyUpTo(0)
	op.setState(StatePolling)
	go m.poll(ctx, op)
	return op, nil
}

func (m *Manager) poll(ctx context.Context, op *Operation) {
	for {
		select {
		case <-ctx.Done():
			m.log.Warn().Str("operation", op.ID).Msg("media poll loop cancelled")
			op.fail(ctx.Err())
			return
		case <-time.After(m.interval):
		}

		count := op.incPolls()
		op.notifyUpTo(count)

		status, err := m.jobs.PollVideoJob(ctx, op.jobName)
		if err != nil {
			m.log.Error().Err(err).Str("operation", op.ID).Int("polls", count).Msg("media job failed")
			op.fail(err)
			return
		}

		if status.Done {
			m.log.Info().Str("operation", op.ID).Int("polls", count).Msg("media job completed")
			op.complete(m.jobs.SignArtifactURI(status.ArtifactURI))
			return
		}

		if count >= m.maxPolls {
			m.log.Error().Str("operation", op.ID).Int("polls", count).Msg("media job exceeded poll budget")
			op.fail(ErrPollBudgetExceeded)
			return
		}
	}
}

func buildVideoPrompt(subject string) string {
	return fmt.Sprintf(
		"A clear demonstration video of the exercise %q performed with perfect form by a fitness coach in a bright modern gym, steady camera, realistic style.",
		subject,
	)
}
