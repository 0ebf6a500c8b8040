package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
)

// DocumentRepository persists series documents as flat JSON files, one per
// tracked asset. Writes are whole-file overwrites via temp file + rename so
// the renderer never sees a partial document.
type DocumentRepository struct {
	dir    string
	tracer trace.Tracer
}

func NewDocumentRepository(dir string, tracer trace.Tracer) *DocumentRepository {
	return &DocumentRepository{dir: dir, tracer: tracer}
}

func (r *DocumentRepository) Path(assetID string) string {
	return filepath.Join(r.dir, assetID+".json")
}

// Save marshals doc with two-space indentation and atomically replaces the
// asset's file.
func (r *DocumentRepository) Save(ctx context.Context, assetID string, doc any) error {
	_, span := r.tracer.Start(ctx, "document-repo.save")
	defer span.End()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document for %s: %w", assetID, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, assetID+"-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", assetID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document for %s: %w", assetID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", assetID, err)
	}

	if err := os.Rename(tmpName, r.Path(assetID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document for %s: %w", assetID, err)
	}
	return nil
}

// Read returns the raw persisted document bytes.
func (r *DocumentRepository) Read(ctx context.Context, assetID string) ([]byte, error) {
	_, span := r.tracer.Start(ctx, "document-repo.read")
	defer span.End()

	return os.ReadFile(r.Path(assetID))
}

// UpdatedAt reports the updated_at stamp of an asset's document, or false
// when the document has not been generated yet or cannot be parsed.
func (r *DocumentRepository) UpdatedAt(ctx context.Context, assetID string) (string, bool) {
	raw, err := r.Read(ctx, assetID)
	if err != nil {
		return "", false
	}
	var meta struct {
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil || meta.UpdatedAt == "" {
		return "", false
	}
	return meta.UpdatedAt, true
}
