package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaKind classifies a media asset as an image, a video, or a document.
type MediaKind string

const (
	MediaKindImage    MediaKind = "image"
	MediaKindVideo    MediaKind = "video"
	MediaKindDocument MediaKind = "document"
)

// Valid reports whether k is one of the known media kinds.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindImage, MediaKindVideo, MediaKindDocument:
		return true
	}
	return false
}

// ProjectDetails holds the long-form content of a project: the rich text
// description plus the ordered media galleries.
type ProjectDetails struct {
	LongDescription string   `bson:"longDescription" json:"longDescription"`
	Images          []string `bson:"images" json:"images"`
	Videos          []string `bson:"videos" json:"videos"`
	DocumentURL     string   `bson:"documentUrl" json:"documentUrl"`
}

// Project represents one portfolio entry in the projects collection.
//
// ID is assigned by the database and immutable. Slug is the human-chosen
// short name used in public URLs and as the media folder name; already
// uploaded media is not moved when the slug later changes.
type Project struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Slug             string             `bson:"slug" json:"slug"`
	Title            string             `bson:"title" json:"title"`
	ShortDescription string             `bson:"shortDescription" json:"shortDescription"`
	PublicationDate  string             `bson:"publicationDate" json:"publicationDate"`
	CoverImageURL    string             `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	SourceCodeURL    string             `bson:"sourceCodeUrl,omitempty" json:"sourceCodeUrl,omitempty"`
	PreviewURL       string             `bson:"previewUrl,omitempty" json:"previewUrl,omitempty"`
	Details          ProjectDetails     `bson:"details" json:"details"`
}

// UploadedAsset describes one object stored in the media CDN.
// PublicID is returned alongside the URL so later deletions do not have to
// reverse-engineer it from the delivery URL.
type UploadedAsset struct {
	URL          string    `json:"url"`
	PublicID     string    `json:"publicId"`
	Format       string    `json:"format"`
	ResourceType string    `json:"-"`
	ResourceKind MediaKind `json:"resourceKind"`
}
