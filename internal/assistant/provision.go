package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/timler/ai-utils/internal/config"
)

// Provision creates a new assistant from cfg and returns its ID.
//
// File attachments are resolved first: an explicit ID list wins, otherwise
// every regular file in the configured folder is uploaded. The caller is
// expected to persist the returned ID (as ASSISTANT_ID) and start the
// session on a subsequent run.
func Provision(ctx context.Context, api API, cfg *config.AssistantConfig) (string, error) {
	fileIDs, err := resolveFileIDs(ctx, api, cfg)
	if err != nil {
		return "", err
	}

	slog.Info("creating assistant",
		"name", cfg.Name,
		"model", cfg.Model,
		"tools", cfg.Tools,
		"files", len(fileIDs),
	)

	id, err := api.CreateAssistant(ctx, Definition{
		Name:         cfg.Name,
		Instructions: cfg.Instructions,
		Model:        cfg.Model,
		Tools:        cfg.Tools,
		FileIDs:      fileIDs,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: create %q: %w", cfg.Name, err)
	}
	return id, nil
}

// resolveFileIDs returns the explicit ID list when present, otherwise uploads
// the contents of the configured folder.
func resolveFileIDs(ctx context.Context, api API, cfg *config.AssistantConfig) ([]string, error) {
	if len(cfg.FileIDs) > 0 {
		return cfg.FileIDs, nil
	}
	if cfg.FileFolder == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(cfg.FileFolder)
	if err != nil {
		return nil, fmt.Errorf("assistant: read file folder %q: %w", cfg.FileFolder, err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(cfg.FileFolder, entry.Name())
		id, err := api.UploadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("assistant: upload %q: %w", path, err)
		}
		slog.Info("uploaded file", "path", path, "file_id", id)
		ids = append(ids, id)
	}
	return ids, nil
}
