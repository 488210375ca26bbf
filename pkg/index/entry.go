package index

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/utkarsh5026/ves/pkg/common"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
)

// Entry represents a single file entry in the Git index (staging area).
//
// Each entry contains comprehensive metadata about a file:
// - Timestamps (creation and modification times with nanosecond precision)
// - File system metadata (device ID, inode, permissions)
// - Content hash (SHA-1 of the file's blob object)
// - Flags (staging state, assumptions about validity)
//
// Binary Layout (62 bytes + filename + padding):
//
//	┌────────────────────────────────────────────────────┐
//	│ CreationTime seconds    (4 bytes) │ CreationTime nanosecs (4)    │
//	│ mtime seconds    (4 bytes) │ mtime nanosecs (4)    │
//	│ device ID        (4 bytes) │ inode         (4)     │
//	│ mode             (4 bytes) │ UserID           (4)     │
//	│ GroupID              (4 bytes) │ file size     (4)     │
//	│ SHA-1 hash      (20 bytes)                         │
//	│ flags            (2 bytes)                         │
//	│ filename (variable) + null terminator + padding    │
//	└────────────────────────────────────────────────────┘
type Entry struct {
	CreationTime     common.Timestamp
	ModificationTime common.Timestamp

	// File system metadata
	DeviceID    uint32   // Device ID
	Inode       uint32   // Inode number
	Mode        FileMode // File mode (type + permissions)
	UserID      uint32   // User ID
	GroupID     uint32   // Group ID
	SizeInBytes uint32   // File size in bytes

	// Git object reference
	BlobHash objects.ObjectHash // SHA-1 hash of the blob

	// Index-specific flags
	AssumeValid bool  // Assume file hasn't changed
	Stage       uint8 // Staging number (0=normal, 1-3=merge conflict)

	// File path (relative to repository root)
	Path scpath.RelativePath
}

// NewEntry creates a new Entry with default values.
func NewEntry(path scpath.RelativePath) *Entry {
	return &Entry{
		Path:        path,
		Mode:        FileModeRegular,
		AssumeValid: false,
		Stage:       0,
	}
}

// NewEntryFromFileInfo creates an Entry from file system information.
func NewEntryFromFileInfo(path scpath.RelativePath, info os.FileInfo, hash objects.ObjectHash) (*Entry, error) {
	entry := NewEntry(path)
	entry.SizeInBytes = uint32(info.Size())
	entry.Mode = FileModeFromFileMode(info.Mode())
	entry.BlobHash = hash

	entry.ModificationTime = common.NewTimestampFromTime(info.ModTime())
	entry.CreationTime = common.NewTimestampFromTime(extractCtime(info))

	entry.DeviceID, entry.Inode, entry.UserID, entry.GroupID = extractSystemMetadata(info)

	return entry, nil
}

// IsModified checks if the entry has been modified compared to file stats.
// This is used to detect changes between the index and working directory.
func (e *Entry) IsModified(info os.FileInfo) bool {
	// If assume-valid is set, trust the index
	if e.AssumeValid {
		return false
	}

	// Check file size
	if e.SizeInBytes != uint32(info.Size()) {
		return true
	}

	// Check modification time (seconds precision is usually sufficient)
	mtimeSeconds := info.ModTime().Unix()
	if int64(e.ModificationTime.Seconds) != mtimeSeconds {
		return true
	}

	// For more accurate detection, caller should compare actual file hash
	return false
}

// CompareTo compares this entry with another for sorting.
// Git sorts entries by name, treating directories as having a trailing '/'.
func (e *Entry) CompareTo(other *Entry) int {
	thisKey := e.Path.String()
	otherKey := other.Path.String()

	if e.Mode.IsDirectory() {
		thisKey += "/"
	}
	if other.Mode.IsDirectory() {
		otherKey += "/"
	}

	if cmp := strings.Compare(thisKey, otherKey); cmp != 0 {
		return cmp
	}

	return int(e.Stage) - int(other.Stage)
}

// Serialize writes the entry in Git's index binary format.
func (e *Entry) Serialize(w io.Writer) error {
	buf := new(bytes.Buffer)

	// Write fixed-size fields (62 bytes)
	if err := e.writeFixedFields(buf); err != nil {
		return fmt.Errorf("failed to write fixed fields: %w", err)
	}

	// Write variable-length filename with null terminator
	pathStr := e.Path.String()
	if _, err := buf.WriteString(pathStr); err != nil {
		return fmt.Errorf("failed to write path: %w", err)
	}
	if err := buf.WriteByte(0); err != nil {
		return fmt.Errorf("failed to write null terminator: %w", err)
	}

	// Pad to an 8-byte boundary. At least one NUL byte beyond the name's own
	// terminator is always written: a name whose length already lands the
	// entry on a boundary gets a full 8-byte pad, not zero.
	entrySize := FixedHeaderSize + len(pathStr) + 1
	padding := AlignmentBoundary - (entrySize % AlignmentBoundary)
	if padding == 0 {
		padding = AlignmentBoundary
	}

	// Write padding
	for i := 0; i < padding; i++ {
		if err := buf.WriteByte(0); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	// Write to output
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	return nil
}

// writeFixedFields writes the 62-byte fixed header.
func (e *Entry) writeFixedFields(w io.Writer) error {
	// Create a buffer for binary encoding
	buf := new(bytes.Buffer)

	// Write timestamps
	fields := []uint32{
		e.CreationTime.Seconds,
		e.CreationTime.Nanoseconds,
		e.ModificationTime.Seconds,
		e.ModificationTime.Nanoseconds,
		e.DeviceID,
		e.Inode,
		uint32(e.Mode),
		e.UserID,
		e.GroupID,
		e.SizeInBytes,
	}

	for _, field := range fields {
		if err := binary.Write(buf, binary.BigEndian, field); err != nil {
			return fmt.Errorf("failed to write field: %w", err)
		}
	}

	// Write SHA-1 hash (20 bytes)
	hashBytes, err := e.BlobHash.Raw()
	if err != nil {
		return fmt.Errorf("failed to get hash bytes: %w", err)
	}
	if _, err := buf.Write(hashBytes[:]); err != nil {
		return fmt.Errorf("failed to write hash: %w", err)
	}

	// Write flags (2 bytes)
	flags := NewEntryFlags(e.AssumeValid, e.Stage, len(e.Path.String()))
	if err := binary.Write(buf, binary.BigEndian, flags); err != nil {
		return fmt.Errorf("failed to write flags: %w", err)
	}

	// Write to output
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write fixed fields: %w", err)
	}

	return nil
}

// Deserialize reads an entry from binary data.
func (e *Entry) Deserialize(r io.Reader) (int, error) {
	// Read fixed-size header (62 bytes)
	fixedData := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedData); err != nil {
		return 0, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if err := e.readFixedFields(fixedData); err != nil {
		return 0, fmt.Errorf("failed to parse fixed fields: %w", err)
	}

	// Read variable-length filename (until null terminator)
	pathBytes := make([]byte, 0, 256) // Start with reasonable capacity
	for {
		b := make([]byte, 1)
		if _, err := r.Read(b); err != nil {
			return 0, fmt.Errorf("failed to read path: %w", err)
		}
		if b[0] == 0 {
			break
		}
		pathBytes = append(pathBytes, b[0])
	}
	e.Path = scpath.RelativePath(pathBytes)

	// Calculate total bytes read so far
	bytesRead := FixedHeaderSize + len(pathBytes) + 1 // +1 for null terminator

	// Skip padding, matching the write side's "always at least one pad byte,
	// a full 8 when already aligned" rule.
	padding := AlignmentBoundary - (bytesRead % AlignmentBoundary)
	if padding == 0 {
		padding = AlignmentBoundary
	}
	paddedSize := bytesRead + padding

	paddingBuf := make([]byte, padding)
	if _, err := io.ReadFull(r, paddingBuf); err != nil {
		return 0, fmt.Errorf("failed to read padding: %w", err)
	}

	return paddedSize, nil
}

// readFixedFields parses the 62-byte fixed header.
func (e *Entry) readFixedFields(data []byte) error {
	if len(data) < FixedHeaderSize {
		return fmt.Errorf("insufficient data for fixed header: got %d bytes, need %d", len(data), FixedHeaderSize)
	}

	buf := bytes.NewReader(data)

	// Read timestamps
	var CreationTimeSeconds, CreationTimeNanos, mtimeSeconds, mtimeNanos uint32
	if err := binary.Read(buf, binary.BigEndian, &CreationTimeSeconds); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &CreationTimeNanos); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &mtimeSeconds); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &mtimeNanos); err != nil {
		return err
	}

	e.CreationTime = common.Timestamp{Seconds: CreationTimeSeconds, Nanoseconds: CreationTimeNanos}
	e.ModificationTime = common.Timestamp{Seconds: mtimeSeconds, Nanoseconds: mtimeNanos}

	// Read file system metadata
	if err := binary.Read(buf, binary.BigEndian, &e.DeviceID); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &e.Inode); err != nil {
		return err
	}

	var mode uint32
	if err := binary.Read(buf, binary.BigEndian, &mode); err != nil {
		return err
	}
	e.Mode = FileMode(mode)

	if err := binary.Read(buf, binary.BigEndian, &e.UserID); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &e.GroupID); err != nil {
		return err
	}
	if err := binary.Read(buf, binary.BigEndian, &e.SizeInBytes); err != nil {
		return err
	}

	// Read SHA-1 hash (20 bytes)
	hashBytes := make([]byte, SHALength)
	if _, err := io.ReadFull(buf, hashBytes); err != nil {
		return fmt.Errorf("failed to read hash: %w", err)
	}
	hashStr := hex.EncodeToString(hashBytes)
	hash, err := objects.ParseObjectHash(hashStr)
	if err != nil {
		return fmt.Errorf("invalid hash: %w", err)
	}
	e.BlobHash = hash

	// Read flags (2 bytes)
	var flags EntryFlags
	if err := binary.Read(buf, binary.BigEndian, &flags); err != nil {
		return err
	}

	// Check for extended flag (not supported in version 2)
	if flags.Extended() {
		return fmt.Errorf("extended flags not supported in index version 2")
	}

	e.AssumeValid = flags.AssumeValid()
	e.Stage = flags.Stage()

	return nil
}

// String returns a human-readable representation of the entry.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry{path: %s, mode: %s, hash: %s, size: %d}",
		e.Path, e.Mode, e.BlobHash.Short(), e.SizeInBytes)
}
