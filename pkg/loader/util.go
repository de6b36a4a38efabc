package loader

import (
	"strings"
)

// CacheKey generates a unique cache key for a DatasetFile based on its ID and path.
func CacheKey(file DatasetFile) string {
	return file.ID + ":" + file.FilePath
}

// ParseS3URI splits an "s3://bucket/key" location into bucket and key. ok is
// false for anything that is not an S3 URI, including a URI without a key.
func ParseS3URI(location string) (bucket string, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
