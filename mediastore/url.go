package mediastore

import (
	"net/url"
	"path"
	"strings"
)

// FolderRoot is the fixed prefix under which all project media lives in
// the CDN.
const FolderRoot = "portfolio/projects"

// ProjectFolder returns the media folder path for a project slug.
func ProjectFolder(slug string) string {
	return FolderRoot + "/" + slug
}

const uploadMarker = "/upload/"

// PublicIDFromURL derives the CDN public ID from a stored delivery URL.
//
// Delivery URLs look like
//
//	https://res.cloudinary.com/<cloud>/image/upload/f_webp,q_auto/v123/portfolio/projects/demo/shot.png
//
// with optional transformation and version segments between the upload
// marker and the public ID. Legacy or external URLs that do not follow the
// managed-folder convention cannot be mapped back to a remote object, so
// ok is false and the caller skips remote deletion.
//
// This reverse mapping is a migration shim for records written before the
// public ID was stored alongside the URL at upload time.
func PublicIDFromURL(rawURL string) (publicID string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	i := strings.Index(u.Path, uploadMarker)
	if i < 0 {
		return "", false
	}
	rest := strings.TrimPrefix(u.Path[i+len(uploadMarker):], "/")

	// Transformation and version segments precede the folder path; drop
	// everything up to the managed folder root.
	segments := strings.Split(rest, "/")
	root := strings.SplitN(FolderRoot, "/", 2)[0]
	for len(segments) > 0 && segments[0] != root {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}

	publicID = strings.Join(segments, "/")
	if !strings.HasPrefix(publicID, FolderRoot+"/") {
		return "", false
	}

	// Public IDs exclude the delivery format extension.
	if ext := path.Ext(publicID); ext != "" {
		publicID = strings.TrimSuffix(publicID, ext)
	}
	if publicID == "" || strings.HasSuffix(publicID, "/") {
		return "", false
	}
	return publicID, true
}
