package store

import (
	"errors"
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/docjson-io/docjson"
	"github.com/docjson-io/docjson/parse"
)

// EncodingVersion is the version written into snapshots.
// MinEncodingVersion is the oldest version Load accepts; older snapshots
// fail, with no backward migration attempted.
const (
	EncodingVersion    = 2
	MinEncodingVersion = 2
)

// ErrEncodingVersion reports a snapshot written by an unsupported
// encoding version.
var ErrEncodingVersion = errors.New("unsupported encoding version")

type snapshot struct {
	Version int               `json:"version"`
	Keys    map[string]string `json:"keys"`
}

// Snapshot writes every document as JSON text under its key, together
// with the encoding version.
func (s *Store) Snapshot(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		Version: EncodingVersion,
		Keys:    make(map[string]string, len(s.docs)),
	}
	for k, doc := range s.docs {
		snap.Keys[k] = doc.Serialize()
	}
	enc := json.NewEncoder(w)
	return enc.Encode(&snap)
}

// Load replaces the store contents with a snapshot. The snapshot's
// version must be at least MinEncodingVersion or the load fails.
func (s *Store) Load(r io.Reader) error {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("%w: %v", parse.ErrParse, err)
	}
	if snap.Version < MinEncodingVersion {
		return fmt.Errorf("%w: got %d, need at least %d",
			ErrEncodingVersion, snap.Version, MinEncodingVersion)
	}
	// load into a fresh map so a bad document leaves the store untouched
	docs := make(map[string]*docjson.Document, len(snap.Keys))
	keys := make([]string, 0, len(snap.Keys))
	for k := range snap.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc, err := docjson.FromBytes([]byte(snap.Keys[k]))
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		docs[k] = doc
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
	return nil
}
