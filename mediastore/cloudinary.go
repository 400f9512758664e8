package mediastore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"portfolio/api-server/models"
)

// SignedUpload carries the parameters a client needs to upload directly to
// the media CDN without routing the payload through this server.
type SignedUpload struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Eager     string `json:"eager,omitempty"`
}

// MediaStore is the remote binary-object service consumed by the manager.
// Implementations must scope deletions to the given media kind, since the
// CDN partitions objects by resource type.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*models.UploadedAsset, error)
	Delete(ctx context.Context, publicID string, kind models.MediaKind) error
	DeleteByPrefix(ctx context.Context, prefix string, kind models.MediaKind) error
	// DeleteFolder removes the (presumably empty) folder itself. A folder
	// that is already absent is not an error.
	DeleteFolder(ctx context.Context, folder string) error
	SignUploadParams(folder string, kind models.MediaKind, timestamp int64) (*SignedUpload, error)
}

// CloudinaryStore implements MediaStore on top of the Cloudinary SDK.
type CloudinaryStore struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
}

// NewCloudinaryStore builds a Cloudinary-backed media store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary client: %w", err)
	}

	return &CloudinaryStore{
		cld:       cld,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}, nil
}

// assetType maps a media kind onto the CDN's resource-type partition.
// Documents (PDFs) are delivered by the CDN under the image type.
func assetType(kind models.MediaKind) api.AssetType {
	switch kind {
	case models.MediaKindVideo:
		return api.Video
	case models.MediaKindDocument:
		return api.Image
	default:
		return api.Image
	}
}

// Upload stores the file under the given folder, letting the CDN detect
// the resource type.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (*models.UploadedAsset, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "auto",
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("media upload failed: %s", res.Error.Message)
	}

	return &models.UploadedAsset{
		URL:          res.SecureURL,
		PublicID:     res.PublicID,
		Format:       res.Format,
		ResourceType: res.ResourceType,
	}, nil
}

// Delete destroys a single object by public ID, scoped to the kind's
// resource-type partition. An object that no longer exists counts as
// deleted.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind models.MediaKind) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(assetType(kind)),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media %s: %w", publicID, err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("failed to delete media %s: %s", publicID, res.Result)
	}
	return nil
}

// DeleteByPrefix removes every object whose public ID starts with prefix
// within one resource-type partition. The admin API reports failures
// (auth errors, rate limits) inside the result body with a nil transport
// error, so both paths are checked.
func (s *CloudinaryStore) DeleteByPrefix(ctx context.Context, prefix string, kind models.MediaKind) error {
	res, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix:    api.CldAPIArray{prefix},
		AssetType: assetType(kind),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media under %s: %w", prefix, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete media under %s: %s", prefix, res.Error.Message)
	}
	return nil
}

// DeleteFolder removes the folder itself once its contents are gone.
func (s *CloudinaryStore) DeleteFolder(ctx context.Context, folder string) error {
	res, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder})
	if err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", folder, err)
	}
	if res.Error.Message != "" {
		if isFolderAbsent(res.Error.Message) {
			return nil
		}
		return fmt.Errorf("failed to delete folder %s: %s", folder, res.Error.Message)
	}
	return nil
}

// isFolderAbsent matches the CDN's "folder does not exist" responses,
// which arrive as API-level errors in the result body.
func isFolderAbsent(message string) bool {
	msg := strings.ToLower(message)
	return strings.Contains(msg, "can't find folder") || strings.Contains(msg, "not found")
}

// SignUploadParams produces the signature for a direct-to-CDN upload. The
// eager transformation mirrors what the server-side upload path produces
// for each kind.
func (s *CloudinaryStore) SignUploadParams(folder string, kind models.MediaKind, timestamp int64) (*SignedUpload, error) {
	var eager string
	switch kind {
	case models.MediaKindVideo:
		eager = "f_webm,q_auto"
	case models.MediaKindImage:
		eager = "f_webp,q_auto"
	}

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("folder", folder)
	if eager != "" {
		params.Set("eager", eager)
		params.Set("eager_async", "true")
	}

	signature, err := api.SignParameters(params, s.apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload parameters: %w", err)
	}

	return &SignedUpload{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
		Eager:     eager,
	}, nil
}
