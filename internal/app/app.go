// Package app wires configuration, driven adapters and core services
// into runnable application variants. It is the only package that knows
// about every layer at once.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/lawgic-labs/lawgic/internal/adapters/driven/ai"
	"github.com/lawgic-labs/lawgic/internal/adapters/driven/config"
	"github.com/lawgic-labs/lawgic/internal/adapters/driven/storage/sqlite"
	"github.com/lawgic-labs/lawgic/internal/adapters/driven/vector/flat"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
	"github.com/lawgic-labs/lawgic/internal/core/services"
	"github.com/lawgic-labs/lawgic/internal/logger"
	"github.com/lawgic-labs/lawgic/internal/normalisers/pdf"
	"github.com/lawgic-labs/lawgic/internal/postprocessors/chunker"
	"github.com/lawgic-labs/lawgic/internal/prompt"
)

// App holds the assembled services for the query-side variants (ask,
// chat, serve). Construction validates the embedding and language model
// connections; a missing index is not fatal and only degrades answers.
type App struct {
	Config *config.Config

	Chat    *services.ChatService
	History *services.HistoryService
	Auth    *services.AuthService
	Files   *services.FileService

	// Degraded is true when no index could be loaded at startup.
	Degraded bool
	// DegradedReason is the user-facing explanation when Degraded.
	DegradedReason string

	store      *sqlite.Store
	embedder   driven.EmbeddingService
	llm        driven.LLMService
	translator driven.Translator
	indexPath  string
}

// New assembles the query-side application rooted at baseDir.
func New(cfg *config.Config, baseDir string) (*App, error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return nil, err
	}

	llm, err := ai.CreateAndValidateLLMService(cfg.LLMSettings())
	if err != nil {
		embedder.Close()
		return nil, err
	}

	translator, err := ai.CreateTranslator(cfg.TranslationSettings())
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, err
	}

	indexDir := cfg.IndexDir(baseDir)
	store, err := sqlite.NewStore(indexDir)
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, err
	}

	a := &App{
		Config:     cfg,
		store:      store,
		embedder:   embedder,
		llm:        llm,
		translator: translator,
		indexPath:  filepath.Join(indexDir, flat.IndexFilename),
	}

	template := prompt.Default(prompt.WithContextBudget(cfg.Retrieval.ContextBudget))

	var index driven.VectorIndex
	if loaded, err := flat.Load(a.indexPath); err != nil {
		a.Degraded = true
		a.DegradedReason = services.MissingIndexReply
		logger.Warn("index not loaded: %v", err)
	} else if err := a.checkIndexModel(loaded); err != nil {
		a.Close()
		return nil, err
	} else {
		index = loaded
		logger.Info("loaded index: %d vectors, model %s", loaded.Len(), loaded.ModelName())
	}

	chatOpts := []services.ChatOption{
		services.WithTopK(cfg.Retrieval.TopK),
		services.WithGenerateOptions(driven.GenerateOptions{
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
		}),
		services.WithHistory(store.HistoryStore()),
	}
	if translator != nil {
		chatOpts = append(chatOpts, services.WithTranslator(translator))
	}

	a.Chat = services.NewChatService(embedder, llm, template, store.ChunkStore(), index, chatOpts...)
	a.History = services.NewHistoryService(store.HistoryStore(), cfg.History.Limit)
	a.Auth = services.NewAuthService(store.UserStore(), store.SessionStore(),
		services.WithSessionTTL(cfg.SessionTTL()))
	a.Files = services.NewFileService(cfg.CorpusDir(baseDir), indexDir)

	return a, nil
}

// IndexPath returns the path the live index is loaded from.
func (a *App) IndexPath() string {
	return a.indexPath
}

// ReloadIndex re-reads the persisted index and swaps it into the live
// pipeline. Called after an external rebuild is detected.
func (a *App) ReloadIndex() error {
	loaded, err := flat.Load(a.indexPath)
	if err != nil {
		return err
	}
	if err := a.checkIndexModel(loaded); err != nil {
		return err
	}
	a.Chat.SwapIndex(loaded)
	a.Degraded = false
	a.DegradedReason = ""
	logger.Info("reloaded index: %d vectors", loaded.Len())
	return nil
}

// checkIndexModel rejects an index built by a different embedding model
// or dimension than the one configured. Mixing the two produces
// nonsense similarities, not errors, so it is caught here.
func (a *App) checkIndexModel(index *flat.Index) error {
	if index.Dimensions() != a.embedder.Dimensions() {
		return fmt.Errorf("index has %d dimensions but embedding model %s produces %d; rebuild the index",
			index.Dimensions(), a.embedder.ModelName(), a.embedder.Dimensions())
	}
	if index.ModelName() != "" && index.ModelName() != a.embedder.ModelName() {
		return fmt.Errorf("index was built with model %s but %s is configured; rebuild the index",
			index.ModelName(), a.embedder.ModelName())
	}
	return nil
}

// Close releases all held resources.
func (a *App) Close() error {
	var firstErr error
	if a.embedder != nil {
		if err := a.embedder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.llm != nil {
		if err := a.llm.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Builder holds the assembled build-side application. It needs the
// embedding service but not the language model, so corpus builds run
// without LLM credentials.
type Builder struct {
	Build *services.BuildService

	store    *sqlite.Store
	embedder driven.EmbeddingService
}

// NewBuilder assembles the index build pipeline rooted at baseDir.
func NewBuilder(cfg *config.Config, baseDir string) (*Builder, error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return nil, err
	}

	indexDir := cfg.IndexDir(baseDir)
	store, err := sqlite.NewStore(indexDir)
	if err != nil {
		embedder.Close()
		return nil, err
	}

	splitter := chunker.New(
		chunker.WithWindowSize(cfg.Chunking.WindowSize),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)

	build := services.NewBuildService(
		cfg.CorpusDir(baseDir),
		filepath.Join(indexDir, flat.IndexFilename),
		pdf.New(),
		splitter,
		embedder,
		store.ChunkStore(),
		func(dimension int, model string) (services.IndexWriter, error) {
			return flat.New(dimension, model)
		},
	)

	return &Builder{
		Build:    build,
		store:    store,
		embedder: embedder,
	}, nil
}

// Close releases all held resources.
func (b *Builder) Close() error {
	var firstErr error
	if b.embedder != nil {
		if err := b.embedder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if b.store != nil {
		if err := b.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
