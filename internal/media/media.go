// Package media converts between the transport representation of binary
// attachments (base64 text + MIME type) and an in-memory object ready to
// hand to the WhatsApp client or write to disk.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidInput means the media object matched neither the inline
	// nor the path variant.
	ErrInvalidInput = errors.New("invalid media input")

	// ErrFileNotFound means a path-variant input referenced a file that
	// does not exist on this server.
	ErrFileNotFound = errors.New("media file not found")
)

// Input is the polymorphic wire shape of an attachment: either inline
// base64 content ({data, mimetype, filename?}) or a server-local file
// reference ({path}). Exactly one variant must be well-formed.
type Input struct {
	Data     string `json:"data,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Object is the resolved attachment. It is created per request, owned by
// the caller for the duration of the send, and discarded afterwards.
type Object struct {
	Data     []byte
	Mimetype string
	Filename string
	Caption  string
}

// Resolve decides the input variant once, at the validation boundary, and
// produces a single internal representation. Ambiguity is resolved in
// favor of the inline variant, matching the order the original gateway
// checked the fields in.
func Resolve(in *Input) (*Object, error) {
	switch {
	case in == nil:
		return nil, ErrInvalidInput
	case in.Data != "" && in.Mimetype != "":
		return FromBase64(in.Mimetype, in.Data, in.Filename)
	case in.Path != "":
		return FromFile(in.Path)
	default:
		return nil, ErrInvalidInput
	}
}

// FromBase64 builds an Object from inline base64 content.
func FromBase64(mimetype, data, filename string) (*Object, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode media data: %w", err)
	}

	return &Object{
		Data:     raw,
		Mimetype: mimetype,
		Filename: filename,
	}, nil
}

// FromFile builds an Object from a file on the local filesystem. The MIME
// type is inferred from the extension, falling back to octet-stream.
func FromFile(path string) (*Object, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	mimetype := mime.TypeByExtension(filepath.Ext(path))
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	return &Object{
		Data:     raw,
		Mimetype: mimetype,
		Filename: filepath.Base(path),
	}, nil
}

// ExtFromFilename returns the lowercased extension of a declared filename,
// including the leading dot, or "" when there is none.
func ExtFromFilename(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ExtFromMime derives an extension from a MIME type's subtype, stripping
// any ";codecs" style parameters ("audio/ogg; codecs=opus" -> ".ogg").
func ExtFromMime(mimetype string) string {
	_, subtype, found := strings.Cut(mimetype, "/")
	if !found || subtype == "" {
		return ""
	}
	subtype, _, _ = strings.Cut(subtype, ";")
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return ""
	}
	return "." + subtype
}
