package main

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/blob"
	"github.com/utkarsh5026/ves/pkg/objects/commit"
	"github.com/utkarsh5026/ves/pkg/objects/tag"
	"github.com/utkarsh5026/ves/pkg/objects/tree"
)

// parseObjectFromContent wraps raw content in the appropriate object header
// and delegates to the matching type's parser, mirroring how the object
// store decodes objects it reads back off disk.
func parseObjectFromContent(objType objects.ObjectType, content []byte) (objects.BaseObject, error) {
	header := fmt.Sprintf("%s %d%c", objType, len(content), objects.NullByte)
	data := append([]byte(header), content...)

	switch objType {
	case objects.BlobType:
		return blob.ParseBlob(data)
	case objects.TreeType:
		return tree.ParseTree(data)
	case objects.CommitType:
		return commit.ParseCommit(data)
	case objects.TagType:
		return tag.ParseTag(data)
	default:
		return nil, fmt.Errorf("unknown object type: %s", objType)
	}
}
