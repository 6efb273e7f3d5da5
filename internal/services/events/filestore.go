package events

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sbinet/npyio/npy"
)

const (
	metadataFile    = "metadata.json"
	sampleExtension = ".npy"
)

// FileStore implements Store over a directory of per-event folders:
//
//	{root}/{event_id}/metadata.json
//	{root}/{event_id}/{channel}.npy
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at dir. The directory is not created;
// it is input data produced outside the service.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the events directory
func (s *FileStore) Root() string {
	return s.root
}

// ValidateIdentifier rejects IDs that would escape the event directory
func ValidateIdentifier(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return nil
}

func (s *FileStore) eventDir(eventID string) (string, error) {
	if err := ValidateIdentifier(eventID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, eventID), nil
}

// LoadMetadata decodes events/{eventID}/metadata.json
func (s *FileStore) LoadMetadata(ctx context.Context, eventID string) (Metadata, error) {
	dir, err := s.eventDir(eventID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, eventID)
		}
		return nil, fmt.Errorf("opening metadata: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.UseNumber()

	var metadata Metadata
	if err := dec.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("decoding metadata for %s: %w", eventID, err)
	}
	if metadata == nil {
		return nil, fmt.Errorf("decoding metadata for %s: document is not an object", eventID)
	}
	return metadata, nil
}

// LoadChannel decodes events/{eventID}/{channel}.npy. Only float32 and
// float64 arrays are accepted; multi-dimensional arrays are flattened.
func (s *FileStore) LoadChannel(ctx context.Context, eventID, channel string) (*Samples, error) {
	dir, err := s.eventDir(eventID)
	if err != nil {
		return nil, err
	}
	if err := ValidateIdentifier(channel); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, channel+sampleExtension))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrChannelNotFound, eventID, channel)
		}
		return nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	r, err := npy.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading npy header for %s/%s: %w", eventID, channel, err)
	}

	descr := r.Header.Descr.Type
	switch {
	case strings.HasSuffix(descr, "f4"):
		var data []float32
		if err := r.Read(&data); err != nil {
			return nil, fmt.Errorf("reading samples for %s/%s: %w", eventID, channel, err)
		}
		return &Samples{DType: Float32, Float32: data}, nil
	case strings.HasSuffix(descr, "f8"):
		var data []float64
		if err := r.Read(&data); err != nil {
			return nil, fmt.Errorf("reading samples for %s/%s: %w", eventID, channel, err)
		}
		return &Samples{DType: Float64, Float64: data}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, descr)
	}
}

// ListEventIDs lists the event directories that contain a metadata document
func (s *FileStore) ListEventIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing events directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, entry.Name(), metadataFile)); err != nil {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}
