package tag

import (
	"fmt"
	"io"
	"strings"

	"github.com/utkarsh5026/ves/pkg/kvlm"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/commit"
)

// Tag represents an annotated tag object. It shares the KVLM envelope with
// Commit but carries a different set of header keys: object, type, tag,
// tagger.
//
// Example tag object content:
// object ce013625030ba8dba906f756967f9e9ca394464a
// type commit
// tag v1.0
// tagger John Doe <john@example.com> 1609459200 +0000
//
// # Release 1.0
type Tag struct {
	ObjectSHA string
	TypeName  objects.ObjectType
	Name      string
	Tagger    *commit.CommitPerson
	Message   string
	sha       *[20]byte
}

// Validate checks that all required fields are present.
func (t *Tag) Validate() error {
	if t.ObjectSHA == "" {
		return fmt.Errorf("object SHA is required")
	}
	if t.TypeName == "" {
		return fmt.Errorf("type is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tag name is required")
	}
	if t.Tagger == nil {
		return fmt.Errorf("tagger is required")
	}
	return nil
}

// Type returns the object type.
func (t *Tag) Type() objects.ObjectType {
	return objects.TagType
}

// Content returns the raw content of the tag (without header).
func (t *Tag) Content() ([]byte, error) {
	kv := kvlm.New()
	kv.Set("object", []byte(t.ObjectSHA))
	kv.Set("type", []byte(t.TypeName.String()))
	kv.Set("tag", []byte(t.Name))
	kv.Set("tagger", []byte(t.Tagger.FormatForGit()))
	kv.SetMessage([]byte(t.Message))

	return kvlm.Serialize(kv), nil
}

// Hash returns the SHA-1 hash of the tag.
func (t *Tag) Hash() ([20]byte, error) {
	if t.sha != nil {
		return *t.sha, nil
	}

	content, err := t.Content()
	if err != nil {
		return [20]byte{}, fmt.Errorf("failed to get content: %w", err)
	}

	header := fmt.Sprintf("%s %d%c", objects.TagType, len(content), objects.NullByte)
	fullData := append([]byte(header), content...)
	sha := objects.CreateSha(fullData)
	t.sha = &sha
	return sha, nil
}

// Size returns the size of the content in bytes.
func (t *Tag) Size() (int64, error) {
	content, err := t.Content()
	if err != nil {
		return 0, err
	}
	return int64(len(content)), nil
}

// Serialize writes the tag in the object store's storage format.
func (t *Tag) Serialize(w io.Writer) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}

	content, err := t.Content()
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	header := fmt.Sprintf("%s %d%c", objects.TagType, len(content), objects.NullByte)

	if _, err := w.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write tag header: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write tag content: %w", err)
	}
	return nil
}

// String returns a human-readable representation.
func (t *Tag) String() string {
	return fmt.Sprintf("Tag{name: %s, object: %s, type: %s}", t.Name, t.ObjectSHA, t.TypeName)
}

// ParseTag parses a tag object from serialized data (with header).
func ParseTag(data []byte) (*Tag, error) {
	content, err := objects.ParseContent(data, objects.TagType)
	if err != nil {
		return nil, err
	}

	kv, err := kvlm.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("invalid tag: %w", err)
	}

	t := &Tag{}

	objectSHA, ok := kv.Get("object")
	if !ok {
		return nil, fmt.Errorf("invalid tag: missing object entry")
	}
	t.ObjectSHA = strings.ToLower(string(objectSHA))

	typeName, ok := kv.Get("type")
	if !ok {
		return nil, fmt.Errorf("invalid tag: missing type entry")
	}
	ot, err := objects.ParseObjectType(string(typeName))
	if err != nil {
		return nil, fmt.Errorf("invalid tag: %w", err)
	}
	t.TypeName = ot

	name, ok := kv.Get("tag")
	if !ok {
		return nil, fmt.Errorf("invalid tag: missing tag entry")
	}
	t.Name = string(name)

	taggerData, ok := kv.Get("tagger")
	if !ok {
		return nil, fmt.Errorf("invalid tag: missing tagger entry")
	}
	tagger, err := commit.ParseCommitPerson(string(taggerData))
	if err != nil {
		return nil, fmt.Errorf("invalid tagger: %w", err)
	}
	t.Tagger = tagger

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tag: %w", err)
	}

	t.Message = string(kv.GetMessage())

	sha := objects.CreateSha(data)
	t.sha = &sha

	return t, nil
}
