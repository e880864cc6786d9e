package models

import (
	"io"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_DecodeDetail(t *testing.T) {
	raw := `{
		"id": "7",
		"title": "Hi",
		"body": "<p>World</p>",
		"tags": ["a", "b"],
		"categories": [{"id": 1, "name": "News"}, {"id": 3, "name": "ML"}],
		"featured_image": "https://cdn/img.png",
		"featured_video": "https://bucket.s3.amazonaws.com/videos/clip.mp4?X-Amz-Signature=abc",
		"created_at": "2026-01-02T03:04:05Z"
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, ID("7"), p.ID)
	assert.Equal(t, []int64{1, 3}, p.CategoryIDs())
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, 2026, p.CreatedAt.Year())
	assert.Nil(t, p.UpdatedAt)
}

func TestPost_CategoryIDsEmpty(t *testing.T) {
	var p Post
	assert.Equal(t, []int64{}, p.CategoryIDs())
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error { c.closed = true; return nil }

func TestLocalFile(t *testing.T) {
	v := &LocalFile{Name: "a.mp4", ContentType: "Video/MP4"}
	assert.True(t, v.IsVideo())
	assert.False(t, v.IsImage())

	img := &LocalFile{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("x")}
	assert.True(t, img.IsImage())
	assert.NoError(t, img.Close())

	ct := &closeTracker{Reader: strings.NewReader("x")}
	f := &LocalFile{Reader: ct}
	require.NoError(t, f.Close())
	assert.True(t, ct.closed)

	var nilFile *LocalFile
	assert.False(t, nilFile.IsVideo())
	assert.NoError(t, nilFile.Close())
}

func TestID_Decode(t *testing.T) {
	var got struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "abc-1", "c": null}`), &got))
	assert.Equal(t, ID("42"), got.A)
	assert.Equal(t, ID("abc-1"), got.B)
	assert.Equal(t, ID(""), got.C)

	b, err := json.Marshal(struct {
		N ID `json:"n"`
		S ID `json:"s"`
	}{N: "42", S: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":42,"s":"abc"}`, string(b))
}
