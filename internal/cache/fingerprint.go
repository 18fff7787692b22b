package cache

import (
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a manifest file. A stored
// probe set is reusable as long as its source manifest still matches the
// fingerprint it was built from.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
