package media_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walink/walink/internal/media"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("png bytes"), 0o644))

	tests := []struct {
		name        string
		input       *media.Input
		expectedErr error
		check       func(*testing.T, *media.Object)
	}{
		{
			name:        "nil input",
			input:       nil,
			expectedErr: media.ErrInvalidInput,
		},
		{
			name:        "empty input",
			input:       &media.Input{},
			expectedErr: media.ErrInvalidInput,
		},
		{
			name:        "data without mimetype",
			input:       &media.Input{Data: "aGVsbG8="},
			expectedErr: media.ErrInvalidInput,
		},
		{
			name:        "mimetype without data",
			input:       &media.Input{Mimetype: "image/png"},
			expectedErr: media.ErrInvalidInput,
		},
		{
			name:  "inline variant",
			input: &media.Input{Data: "aGVsbG8=", Mimetype: "text/plain", Filename: "hi.txt"},
			check: func(t *testing.T, obj *media.Object) {
				assert.Equal(t, []byte("hello"), obj.Data)
				assert.Equal(t, "text/plain", obj.Mimetype)
				assert.Equal(t, "hi.txt", obj.Filename)
			},
		},
		{
			name:  "path variant",
			input: &media.Input{Path: path},
			check: func(t *testing.T, obj *media.Object) {
				assert.Equal(t, []byte("png bytes"), obj.Data)
				assert.Equal(t, "image/png", obj.Mimetype)
				assert.Equal(t, "photo.png", obj.Filename)
			},
		},
		{
			name:  "inline wins over path",
			input: &media.Input{Data: "aGVsbG8=", Mimetype: "text/plain", Path: path},
			check: func(t *testing.T, obj *media.Object) {
				assert.Equal(t, []byte("hello"), obj.Data)
				assert.Equal(t, "text/plain", obj.Mimetype)
			},
		},
		{
			name:        "path does not exist",
			input:       &media.Input{Path: filepath.Join(dir, "missing.png")},
			expectedErr: media.ErrFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := media.Resolve(tt.input)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, obj)
				return
			}

			require.NoError(t, err)
			tt.check(t, obj)
		})
	}
}

func TestFromBase64_InvalidData(t *testing.T) {
	obj, err := media.FromBase64("image/png", "not base64!!!", "")
	require.Error(t, err)
	assert.Nil(t, obj)
}

func TestFromFile_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.zzz")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	obj, err := media.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", obj.Mimetype)
}

func TestFromFile_LargePayloadRoundTrip(t *testing.T) {
	payload := make([]byte, 1<<16)
	for i := range payload {
		payload[i] = byte(i)
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	obj, err := media.FromBase64("application/octet-stream", encoded, "blob.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, obj.Data)
}

func TestExtFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"report.PDF", ".pdf"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, media.ExtFromFilename(tt.filename), tt.filename)
	}
}

func TestExtFromMime(t *testing.T) {
	tests := []struct {
		mimetype string
		expected string
	}{
		{"image/jpeg", ".jpeg"},
		{"audio/ogg; codecs=opus", ".ogg"},
		{"application/pdf", ".pdf"},
		{"bogus", ""},
		{"", ""},
		{"image/", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, media.ExtFromMime(tt.mimetype), tt.mimetype)
	}
}
