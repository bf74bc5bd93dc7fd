// Package storage owns uploaded photo files: saving under collision-free
// names and best-effort removal of replaced or orphaned images.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sharmake123/som-election-platform/models"
)

// Photos is the process-wide photo store, wired up at startup.
var Photos Store

// Store saves uploaded photos and removes stored ones by name. Remove is
// best-effort: failures are logged, never surfaced to the request.
type Store interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(name string)
}

// ErrNotImage is returned for uploads that are not jpeg/jpg/png.
var ErrNotImage = errors.New("Images only!")

var imageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidatePhoto checks the upload's extension and declared content type.
func ValidatePhoto(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] || !imageTypes[file.Header.Get("Content-Type")] {
		return ErrNotImage
	}
	return nil
}

// DiskStore keeps photos as files in a single directory.
type DiskStore struct {
	Dir string
}

// Save writes the upload under a uuid-derived name, so concurrent updates
// to the same entity can never collide on a filename.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("photo-%s%s", uuid.NewString(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored photo. The default placeholder is never touched.
func (s *DiskStore) Remove(name string) {
	if name == "" || name == models.DefaultPhoto {
		return
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("Error deleting photo %s: %v", name, err)
	}
}
