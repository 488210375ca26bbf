package blob

import (
	"fmt"
	"io"

	"github.com/utkarsh5026/ves/pkg/objects"
)

// Blob represents the content of a single file, stored verbatim with no
// interpretation of its bytes.
type Blob struct {
	content []byte
	sha     *[20]byte
}

// NewBlob creates a new Blob object from raw data
func NewBlob(data []byte) *Blob {
	return &Blob{content: data}
}

// ParseBlob parses a blob from serialized data (with header)
func ParseBlob(data []byte) (*Blob, error) {
	content, err := objects.ParseContent(data, objects.BlobType)
	if err != nil {
		return nil, err
	}

	sha := objects.CreateSha(data)
	return &Blob{content: content, sha: &sha}, nil
}

// Type returns the object type
func (b *Blob) Type() objects.ObjectType {
	return objects.BlobType
}

// Content returns the raw content of the blob
func (b *Blob) Content() ([]byte, error) {
	return b.content, nil
}

// Hash returns the SHA-1 hash of the blob
func (b *Blob) Hash() ([20]byte, error) {
	if b.sha != nil {
		return *b.sha, nil
	}

	header := fmt.Sprintf("%s %d%c", objects.BlobType, len(b.content), objects.NullByte)
	fullData := append([]byte(header), b.content...)
	sha := objects.CreateSha(fullData)
	b.sha = &sha
	return sha, nil
}

// Size returns the size of the content in bytes
func (b *Blob) Size() (int64, error) {
	return int64(len(b.content)), nil
}

// Serialize writes the blob in Git's storage format
func (b *Blob) Serialize(w io.Writer) error {
	header := fmt.Sprintf("%s %d%c", objects.BlobType, len(b.content), objects.NullByte)

	if _, err := w.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write blob header: %w", err)
	}
	if _, err := w.Write(b.content); err != nil {
		return fmt.Errorf("failed to write blob content: %w", err)
	}
	return nil
}

// String returns a human-readable representation
func (b *Blob) String() string {
	hash, err := b.Hash()
	if err != nil {
		return fmt.Sprintf("Blob{size: %d, error: %v}", len(b.content), err)
	}
	return fmt.Sprintf("Blob{size: %d, hash: %x}", len(b.content), hash)
}
