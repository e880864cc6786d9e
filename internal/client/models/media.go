package models

import (
	"io"
	"strings"
)

// LocalFile is a binary picked from disk that has not been uploaded yet.
// Reader is consumed by exactly one upload or save call.
type LocalFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// IsVideo reports whether the declared content type is a video type.
func (f *LocalFile) IsVideo() bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.ContentType), "video/")
}

// IsImage reports whether the declared content type is an image type.
func (f *LocalFile) IsImage() bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// Close closes the underlying reader when it is an io.Closer.
func (f *LocalFile) Close() error {
	if f == nil {
		return nil
	}
	if c, ok := f.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
