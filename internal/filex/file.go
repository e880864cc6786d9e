// Package filex opens local media files for upload.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

// OpenLocalFile opens path for reading and describes it as a LocalFile. The
// content type is sniffed from the file contents; the caller owns the returned
// file and must Close it.
func OpenLocalFile(path string) (*models.LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &models.LocalFile{
		Name:        filepath.Base(path),
		ContentType: baseType(mt.String()),
		Size:        info.Size(),
		Reader:      f,
	}, nil
}

// baseType drops MIME parameters such as "; charset=utf-8".
func baseType(t string) string {
	for i := 0; i < len(t); i++ {
		if t[i] == ';' {
			return t[:i]
		}
	}
	return t
}
