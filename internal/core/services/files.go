package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// Download folder names accepted by ResolveDownload.
const (
	FolderData        = "data"
	FolderVectorstore = "vectorstore"
)

// FileService lists and resolves corpus and vector store files.
type FileService struct {
	corpusDir string
	indexDir  string
}

// NewFileService creates the file listing service.
func NewFileService(corpusDir, indexDir string) *FileService {
	return &FileService{
		corpusDir: corpusDir,
		indexDir:  indexDir,
	}
}

// ListFiles returns the PDF filenames in the corpus directory and the
// files in the vector store directory, both sorted. Missing directories
// yield empty lists.
func (s *FileService) ListFiles(_ context.Context) (pdfFiles, indexFiles []string, err error) {
	pdfFiles, err = listDir(s.corpusDir, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".pdf")
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing corpus: %w", err)
	}

	indexFiles, err = listDir(s.indexDir, func(name string) bool {
		// Temp files from an in-flight index save are not part of the
		// published store.
		return !strings.HasPrefix(name, ".")
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing vector store: %w", err)
	}
	return pdfFiles, indexFiles, nil
}

// ResolveDownload maps a (folder, filename) pair to an absolute path.
func (s *FileService) ResolveDownload(_ context.Context, folder, filename string) (string, error) {
	var dir string
	switch folder {
	case FolderData:
		dir = s.corpusDir
	case FolderVectorstore:
		dir = s.indexDir
	default:
		return "", fmt.Errorf("unknown folder %q: %w", folder, domain.ErrNotFound)
	}

	// The filename must be a bare name; anything that resolves outside
	// the folder is treated as nonexistent rather than forbidden.
	if filename == "" || filename != filepath.Base(filename) ||
		filename == "." || filename == ".." {
		return "", fmt.Errorf("file %q: %w", filename, domain.ErrNotFound)
	}

	path := filepath.Join(dir, filename)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("file %q: %w", filename, domain.ErrNotFound)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// listDir returns the sorted regular filenames in dir that pass keep.
// A missing dir yields an empty list.
func listDir(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
