// AngelaMos | 2026
// storage_test.go

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/storage"
)

func TestObjectKeyFromStoredURL(t *testing.T) {
	key, err := storage.ObjectKey(
		"mp3/",
		"https://beatstore-bucket.s3.eu-north-1.amazonaws.com/mp3/1712345-night_drive.mp3",
	)

	require.NoError(t, err)
	assert.Equal(t, "mp3/1712345-night_drive.mp3", key)
}

func TestObjectKeyDecodesEscapedSegment(t *testing.T) {
	key, err := storage.ObjectKey(
		"images/",
		"https://cdn.example.com/images/cover%20art.png",
	)

	require.NoError(t, err)
	assert.Equal(t, "images/cover art.png", key)
}

func TestObjectKeyTrailingSlash(t *testing.T) {
	key, err := storage.ObjectKey(
		"files/",
		"https://cdn.example.com/files/stems.zip/",
	)

	require.NoError(t, err)
	assert.Equal(t, "files/stems.zip", key)
}

func TestObjectKeyNoSegment(t *testing.T) {
	_, err := storage.ObjectKey("mp3/", "///")
	assert.Error(t, err)

	_, err = storage.ObjectKey("mp3/", "")
	assert.Error(t, err)
}
