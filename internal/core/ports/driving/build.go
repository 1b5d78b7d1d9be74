package driving

import "context"

// IndexBuilder runs the offline ingestion and index build.
// It is an exclusive batch operation decoupled from the live query
// path; it must not run concurrently with itself.
type IndexBuilder interface {
	// Build discovers corpus documents, splits them into chunks,
	// embeds every chunk, and replaces the persisted vector index and
	// chunk sidecar wholesale.
	//
	// A missing corpus directory or a corpus with zero supported
	// documents returns domain.ErrEmptyCorpus. Any embedding failure
	// fails the whole build.
	Build(ctx context.Context) (*BuildReport, error)
}

// BuildReport summarises a completed build.
type BuildReport struct {
	// Documents is the number of corpus files ingested.
	Documents int

	// Chunks is the number of chunks embedded and indexed.
	Chunks int

	// IndexPath is where the vector index was written.
	IndexPath string
}
