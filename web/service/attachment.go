package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"condo-panel/config"

	"github.com/google/uuid"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Image formats accepted for request photos. Content is never inspected.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AttachmentService stores uploaded request photos under the upload folder,
// named by a fresh uuid plus the original extension.
type AttachmentService struct{}

// Save writes the uploaded file and returns the stored file name. The name
// never derives from user input beyond the extension.
func (s *AttachmentService) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}

	folder := config.GetUploadFolder()
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored attachment; a missing file is not an error.
func (s *AttachmentService) Remove(name string) error {
	path := filepath.Join(config.GetUploadFolder(), filepath.Base(name))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
