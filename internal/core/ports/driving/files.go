package driving

import "context"

// FileService lists and resolves the corpus and vector store files that
// the web variant exposes for inspection and download.
type FileService interface {
	// ListFiles returns the PDF filenames in the corpus directory and
	// the files in the vector store directory. Either list may be
	// empty; a missing directory is reported as an empty list.
	ListFiles(ctx context.Context) (pdfFiles, indexFiles []string, err error)

	// ResolveDownload maps a (folder, filename) pair to an absolute
	// path. folder must be "data" or "vectorstore"; anything else, a
	// path escaping the folder, or a missing file returns
	// domain.ErrNotFound.
	ResolveDownload(ctx context.Context, folder, filename string) (string, error)
}
