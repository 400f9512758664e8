package manager

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"portfolio/api-server/mediastore"
	"portfolio/api-server/models"
)

// UploadFile is one file in an upload batch.
type UploadFile struct {
	Filename string
	Content  io.Reader
}

// UploadBatch uploads all files concurrently into the project's media
// folder and classifies each result. The batch is all-or-nothing: any
// single failure fails the whole batch, though uploads that already
// completed for sibling files are not rolled back; the caller retries.
func (m *Manager) UploadBatch(ctx context.Context, projectID string, files []UploadFile) ([]models.UploadedAsset, error) {
	if len(files) == 0 {
		return nil, models.NewValidationError("media", "at least one file is required")
	}

	mctx, cancel := m.metaCtx(ctx)
	project, err := m.store.FindByID(mctx, projectID)
	cancel()
	if err != nil {
		return nil, err
	}
	folder := mediastore.ProjectFolder(project.Slug)

	uctx, ucancel := context.WithTimeout(ctx, m.uploadTimeout)
	defer ucancel()

	g, gctx := errgroup.WithContext(uctx)
	assets := make([]models.UploadedAsset, len(files))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			asset, err := m.media.Upload(gctx, file.Content, folder)
			if err != nil {
				return fmt.Errorf("upload of %s failed: %w", file.Filename, err)
			}
			asset.ResourceKind = ClassifyAsset(asset.ResourceType, asset.Format, file.Filename)
			assets[i] = *asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// ClassifyAsset maps the media store's detected resource type onto a media
// kind. The store has no native "document" type, so raw assets and PDFs
// (by reported format or filename extension) become documents; anything
// else the store calls an image stays an image, even when it is neither.
// Exotic file types are knowingly miscategorized.
func ClassifyAsset(resourceType, format, filename string) models.MediaKind {
	switch resourceType {
	case "video":
		return models.MediaKindVideo
	case "raw":
		return models.MediaKindDocument
	}
	if strings.EqualFold(format, "pdf") || strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return models.MediaKindDocument
	}
	return models.MediaKindImage
}
