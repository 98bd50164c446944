package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is object storage reached through presigned URLs. File bytes
// never pass through this service.
type FileStorage interface {
	// GeneratePresignedUploadURL returns a URL accepting one PUT of objectKey.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	// GeneratePresignedDownloadURL returns a URL serving GET of objectKey.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarKey builds the object key of a new avatar for userID. It fails for
// content types that are not images.
func AvatarKey(userID, fileName, contentType string, now time.Time) (string, error) {
	ext, ok := allowedAvatarTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("unsupported avatar content type %q", contentType)
	}
	if e := strings.ToLower(path.Ext(fileName)); e == ".jpeg" || e == ext {
		ext = e
	}
	return fmt.Sprintf("avatars/%s/%d%s", userID, now.UnixNano(), ext), nil
}
