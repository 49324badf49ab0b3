package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FileArchive stores and retrieves original upload files.
type FileArchive interface {
	Save(year, month int, fileName string, data []byte) (string, error)
	Read(path string) ([]byte, error)
}

// DiskArchive keeps uploads under a storage root, one directory per year.
type DiskArchive struct {
	Root string
}

// NewDiskArchive constructs a disk archive rooted at root.
func NewDiskArchive(root string) *DiskArchive {
	return &DiskArchive{Root: root}
}

// Save writes the upload and returns its archive path.
func (a *DiskArchive) Save(year, month int, fileName string, data []byte) (string, error) {
	dir := filepath.Join(a.Root, strconv.Itoa(year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	// Base strips any client-supplied directory components.
	name := fmt.Sprintf("%d-%02d-%s", year, month, filepath.Base(fileName))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Read returns the archived file contents.
func (a *DiskArchive) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
