package driving

import (
	"context"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// ChatService runs the full question answering pipeline for one user
// message: validation, inbound translation, retrieval, prompt assembly,
// generation, outbound translation, and history recording.
type ChatService interface {
	// Ask answers a single question. userID may be empty for the
	// standalone chat variant, in which case no history is recorded.
	//
	// Pipeline failures that have a fixed user-facing reply (empty
	// message, missing index) are returned as a normal Answer carrying
	// that reply. Generation failures are returned as errors wrapping
	// domain.ErrGenerationFailed.
	Ask(ctx context.Context, userID string, query domain.Query) (*domain.Answer, error)

	// Ready reports whether the pipeline can answer questions, and a
	// user-facing reason when it cannot (index missing, LLM not
	// configured).
	Ready() (bool, string)
}
