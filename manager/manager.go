// Package manager implements the project and media consistency manager:
// the orchestration that keeps a project document and its remote media
// objects loosely consistent across create, update, delete and partial
// media removal. The two backing stores share no transaction; within a
// delete, media cleanup is attempted strictly before the record deletion
// so a crash mid-operation can leave an orphaned remote folder but never
// a dangling database record.
package manager

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio/api-server/mediastore"
	"portfolio/api-server/models"
)

// ProjectStore is the document-store surface the manager depends on.
// Implemented by database.ProjectRepository.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Insert(ctx context.Context, project *models.Project) (string, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (matched, modified int64, err error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	RemoveMediaURL(ctx context.Context, id string, kind models.MediaKind, url string) (int64, error)
}

// Manager sequences document-store and media-store calls for each
// operation and reconciles partial failures into a single outcome.
type Manager struct {
	store ProjectStore
	media mediastore.MediaStore
	log   *logrus.Logger

	metadataTimeout time.Duration
	uploadTimeout   time.Duration
}

// New builds a Manager. Timeouts of zero fall back to defaults.
func New(store ProjectStore, media mediastore.MediaStore, log *logrus.Logger, metadataTimeout, uploadTimeout time.Duration) *Manager {
	if metadataTimeout <= 0 {
		metadataTimeout = 10 * time.Second
	}
	if uploadTimeout <= 0 {
		uploadTimeout = 90 * time.Second
	}
	return &Manager{
		store:           store,
		media:           media,
		log:             log,
		metadataTimeout: metadataTimeout,
		uploadTimeout:   uploadTimeout,
	}
}

func (m *Manager) metaCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.metadataTimeout)
}

// List returns all projects, newest publication date first.
func (m *Manager) List(ctx context.Context) ([]models.Project, error) {
	mctx, cancel := m.metaCtx(ctx)
	defer cancel()

	projects, err := m.store.FindAll(mctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].PublicationDate > projects[j].PublicationDate
	})
	return projects, nil
}

// Create validates and stores a new project, returning it with the
// identifier assigned by the document store. Slug uniqueness is not
// checked; two projects sharing a slug would also share a media folder.
func (m *Manager) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if strings.TrimSpace(project.Title) == "" {
		return nil, models.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(project.Slug) == "" {
		return nil, models.NewValidationError("slug", "slug is required")
	}

	// The identifier is owned by the document store.
	project.ID = primitive.NilObjectID

	mctx, cancel := m.metaCtx(ctx)
	defer cancel()

	id, err := m.store.Insert(mctx, project)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	project.ID = oid
	return project, nil
}

// UpdateInput is the partial field set applied by Update. Nil fields are
// left untouched in the stored document.
type UpdateInput struct {
	ID string

	Title            *string
	Slug             *string
	ShortDescription *string
	PublicationDate  *string
	CoverImageURL    *string
	SourceCodeURL    *string
	PreviewURL       *string

	LongDescription *string
	Images          *[]string
	Videos          *[]string
	DocumentURL     *string
}

// SetFields flattens the input into dot-notation update paths so nested
// details fields merge instead of replacing the whole record.
func (in *UpdateInput) SetFields() map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}
	set("title", in.Title)
	set("slug", in.Slug)
	set("shortDescription", in.ShortDescription)
	set("publicationDate", in.PublicationDate)
	set("coverImageUrl", in.CoverImageURL)
	set("sourceCodeUrl", in.SourceCodeURL)
	set("previewUrl", in.PreviewURL)
	set("details.longDescription", in.LongDescription)
	set("details.documentUrl", in.DocumentURL)
	if in.Images != nil {
		fields["details.images"] = *in.Images
	}
	if in.Videos != nil {
		fields["details.videos"] = *in.Videos
	}
	return fields
}

// Update applies a field-level update to an existing project and returns
// the modified count.
func (m *Manager) Update(ctx context.Context, in *UpdateInput) (int64, error) {
	if strings.TrimSpace(in.ID) == "" {
		return 0, models.NewValidationError("_id", "identifier is required")
	}
	fields := in.SetFields()
	if len(fields) == 0 {
		return 0, models.NewValidationError("fields", "no updatable fields provided")
	}

	mctx, cancel := m.metaCtx(ctx)
	defer cancel()

	matched, modified, err := m.store.UpdateFields(mctx, in.ID, fields)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, models.ErrProjectNotFound
	}
	return modified, nil
}

// DeleteResult reports the outcome of a delete, including any best-effort
// media cleanup failure the caller should surface.
type DeleteResult struct {
	DeletedCount        int64  `json:"deletedCount"`
	MediaCleanupWarning string `json:"mediaCleanupWarning,omitempty"`
}

// Delete removes a project and its remote media folder as a two-step saga:
// media cleanup first (best effort, failures reported but never fatal),
// then the authoritative record deletion. The database is the UI's source
// of truth, so an orphaned remote folder is preferred over an orphaned
// record.
func (m *Manager) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("identifier", "identifier is required")
	}

	mctx, cancel := m.metaCtx(ctx)
	project, err := m.store.FindByID(mctx, id)
	cancel()
	if err != nil {
		return nil, err
	}

	folder := mediastore.ProjectFolder(project.Slug)
	var warnings []string

	for _, kind := range presentMediaKinds(project) {
		kctx, kcancel := m.metaCtx(ctx)
		err := m.media.DeleteByPrefix(kctx, folder+"/", kind)
		kcancel()
		if err != nil {
			m.log.WithError(err).WithFields(logrus.Fields{
				"project": id,
				"folder":  folder,
				"kind":    kind,
			}).Warn("Media cleanup failed during project deletion")
			warnings = append(warnings, err.Error())
		}
	}

	fctx, fcancel := m.metaCtx(ctx)
	err = m.media.DeleteFolder(fctx, folder)
	fcancel()
	if err != nil {
		m.log.WithError(err).WithFields(logrus.Fields{
			"project": id,
			"folder":  folder,
		}).Warn("Media folder deletion failed during project deletion")
		warnings = append(warnings, err.Error())
	}

	dctx, dcancel := m.metaCtx(ctx)
	deleted, err := m.store.DeleteByID(dctx, id)
	dcancel()
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		// The record vanished between lookup and delete; report the race
		// instead of silently succeeding.
		return nil, models.ErrProjectNotFound
	}

	return &DeleteResult{
		DeletedCount:        deleted,
		MediaCleanupWarning: strings.Join(warnings, "; "),
	}, nil
}

// presentMediaKinds lists the resource-type partitions the project
// actually holds media in, so cleanup is issued once per kind present.
func presentMediaKinds(p *models.Project) []models.MediaKind {
	var kinds []models.MediaKind
	if len(p.Details.Images) > 0 || p.CoverImageURL != "" {
		kinds = append(kinds, models.MediaKindImage)
	}
	if len(p.Details.Videos) > 0 {
		kinds = append(kinds, models.MediaKindVideo)
	}
	if p.Details.DocumentURL != "" {
		kinds = append(kinds, models.MediaKindDocument)
	}
	return kinds
}

// RemoveMediaInput identifies one media URL to detach from a project.
type RemoveMediaInput struct {
	ID   string
	URL  string
	Kind models.MediaKind
}

// RemoveMedia detaches a single media URL from a project: when the URL
// follows the managed folder convention the remote object is destroyed
// first (best effort), then the document is updated. URLs that cannot be
// mapped back to a remote object skip the remote deletion but still leave
// the record.
func (m *Manager) RemoveMedia(ctx context.Context, in *RemoveMediaInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return models.NewValidationError("identifier", "identifier is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return models.NewValidationError("mediaUrl", "media URL is required")
	}
	if !in.Kind.Valid() {
		return models.NewValidationError("mediaKind", "media kind must be image, video or document")
	}

	if publicID, ok := mediastore.PublicIDFromURL(in.URL); ok {
		dctx, cancel := m.metaCtx(ctx)
		err := m.media.Delete(dctx, publicID, in.Kind)
		cancel()
		if err != nil {
			m.log.WithError(err).WithFields(logrus.Fields{
				"project":  in.ID,
				"publicId": publicID,
				"kind":     in.Kind,
			}).Warn("Remote media deletion failed during media removal")
		}
	} else {
		m.log.WithFields(logrus.Fields{
			"project": in.ID,
			"url":     in.URL,
		}).Info("Media URL outside managed folder convention, skipping remote deletion")
	}

	mctx, cancel := m.metaCtx(ctx)
	defer cancel()
	matched, err := m.store.RemoveMediaURL(mctx, in.ID, in.Kind, in.URL)
	if err != nil {
		return err
	}
	if matched == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}
