// Package store maps the document API onto a keyed in-memory store and
// carries the compatibility command surface: one method per logical
// command, taking already-extracted arguments plus a raw or canonical
// path. All paths are normalized on entry, and all access to a given
// document is serialized by the store lock, which is the exclusive-access
// guarantee the engine relies on.
package store

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/docjson-io/docjson"
	"github.com/docjson-io/docjson/debug"
	"github.com/docjson-io/docjson/ir"
	"github.com/docjson-io/docjson/parse"
)

// ErrNewRoot reports an attempt to create a document at a non-root path.
var ErrNewRoot = errors.New("new objects must be created at the root")

type Store struct {
	mu   sync.RWMutex
	docs map[string]*docjson.Document
}

func New() *Store {
	return &Store{docs: make(map[string]*docjson.Document)}
}

// SetOptions carries the optional modifiers of a set command. NX and XX
// are mutually exclusive; Format declares the payload encoding.
type SetOptions struct {
	NX     bool
	XX     bool
	Format parse.Format
}

// Set parses payload and stores it at path under key. A missing document
// is created only by a root assignment. Returns whether a write happened:
// NX on an existing key and XX on a missing one are silent no-ops.
func (s *Store) Set(key, path string, payload []byte, opts SetOptions) (bool, error) {
	if opts.NX && opts.XX {
		return false, fmt.Errorf("NX and XX are mutually exclusive")
	}
	path = docjson.NormalizePath(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if exists && opts.NX {
		return false, nil
	}
	if !exists && opts.XX {
		return false, nil
	}
	node, err := parse.Parse(payload, parse.ParseFormat(opts.Format))
	if err != nil {
		return false, err
	}
	if !exists {
		if path != "$" {
			return false, ErrNewRoot
		}
		s.docs[key] = docjson.New(node)
		if debug.Store() {
			debug.Logf("store: created %q\n", key)
		}
		return true, nil
	}
	if err := doc.SetAtPath(path, node); err != nil {
		return false, err
	}
	return true, nil
}

// Get serializes the value(s) at the given paths under key. With no
// paths the root is returned; with several, the result is one object
// keyed by the literal path strings. ok is false when the key holds no
// document.
func (s *Store) Get(key string, paths ...string) (res string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[key]
	if !exists {
		return "", false, nil
	}
	switch len(paths) {
	case 0:
		res, err = doc.GetJSON("$")
	case 1:
		res, err = doc.GetJSON(docjson.NormalizePath(paths[0]))
	default:
		normalized := make([]string, len(paths))
		for i, p := range paths {
			normalized[i] = docjson.NormalizePath(p)
		}
		res, err = doc.GetMulti(normalized)
	}
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

// MGet resolves one path against many keys in a single round trip. The
// result is aligned with keys; entries are nil for missing keys and for
// keys where the path has no match.
func (s *Store) MGet(path string, keys ...string) ([]*string, error) {
	path = docjson.NormalizePath(path)
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*string, len(keys))
	for i, key := range keys {
		doc, exists := s.docs[key]
		if !exists {
			continue
		}
		out, err := doc.GetJSON(path)
		if err == ir.ErrNoSuchPath {
			continue
		}
		if err != nil {
			return nil, err
		}
		res[i] = &out
	}
	return res, nil
}

// Del removes the value at path under key and returns the number of
// values removed. Deleting the root deletes the key itself. Forget is
// the historical alias.
func (s *Store) Del(key, path string) (int, error) {
	path = docjson.NormalizePath(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, nil
	}
	if path == "$" {
		delete(s.docs, key)
		if debug.Store() {
			debug.Logf("store: deleted %q\n", key)
		}
		return 1, nil
	}
	return doc.DeletePath(path)
}

func (s *Store) Forget(key, path string) (int, error) {
	return s.Del(key, path)
}

// Type returns the wire-level type name at path. ok is false when the
// key holds no document.
func (s *Store) Type(key, path string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[key]
	if !exists {
		return "", false, nil
	}
	res, err := doc.TypeAt(docjson.NormalizePath(path))
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

func (s *Store) StrLen(key, path string) (int, bool, error) {
	return s.lenOp(key, path, (*docjson.Document).StrLen)
}

func (s *Store) ArrLen(key, path string) (int, bool, error) {
	return s.lenOp(key, path, (*docjson.Document).ArrLen)
}

func (s *Store) ObjLen(key, path string) (int, bool, error) {
	return s.lenOp(key, path, (*docjson.Document).ObjLen)
}

func (s *Store) lenOp(key, path string, fn func(*docjson.Document, string) (int, error)) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, false, nil
	}
	res, err := fn(doc, docjson.NormalizePath(path))
	if err != nil {
		return 0, false, err
	}
	return res, true, nil
}

// ObjKeys returns the keys of the object at path in insertion order. ok
// is false when the key holds no document.
func (s *Store) ObjKeys(key, path string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[key]
	if !exists {
		return nil, false, nil
	}
	res, err := doc.ObjKeys(docjson.NormalizePath(path))
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// StrAppend appends the JSON string payload to the string at path and
// returns the resulting byte length.
func (s *Store) StrAppend(key, path string, payload []byte) (int, error) {
	node, err := parse.Parse(payload)
	if err != nil {
		return 0, err
	}
	if node.Type != ir.StringType {
		return 0, &docjson.WrongTypeError{Expected: ir.StringType, Actual: node.Type}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, docjson.ErrMissingDocument
	}
	return doc.StrAppend(docjson.NormalizePath(path), node.String)
}

func (s *Store) NumIncrBy(key, path string, by float64) (string, error) {
	return s.numOp(key, path, by, (*docjson.Document).NumIncrBy)
}

func (s *Store) NumMultBy(key, path string, by float64) (string, error) {
	return s.numOp(key, path, by, (*docjson.Document).NumMultBy)
}

func (s *Store) NumPowBy(key, path string, by float64) (string, error) {
	return s.numOp(key, path, by, (*docjson.Document).NumPowBy)
}

func (s *Store) numOp(key, path string, by float64, fn func(*docjson.Document, string, float64) (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return "", docjson.ErrMissingDocument
	}
	return fn(doc, docjson.NormalizePath(path), by)
}

// ArrAppend parses each payload and appends them in argument order to
// the array at path, returning the resulting length.
func (s *Store) ArrAppend(key, path string, payloads ...[]byte) (int, error) {
	values, err := parseValues(payloads)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, docjson.ErrMissingDocument
	}
	return doc.ArrAppend(docjson.NormalizePath(path), values...)
}

// ArrInsert parses each payload and inserts them at index in the array
// at path, returning the resulting length.
func (s *Store) ArrInsert(key, path string, index int, payloads ...[]byte) (int, error) {
	values, err := parseValues(payloads)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, docjson.ErrMissingDocument
	}
	return doc.ArrInsert(docjson.NormalizePath(path), index, values...)
}

// ArrIndex searches the array at path for the parsed scalar within
// [start, end). A zero end means the end of the array. A missing key
// reports -1.
func (s *Store) ArrIndex(key, path string, scalar []byte, start, end int) (int, error) {
	node, err := parse.Parse(scalar)
	if err != nil {
		return 0, err
	}
	if end == 0 {
		end = math.MaxInt
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[key]
	if !exists {
		return -1, nil
	}
	return doc.ArrIndex(docjson.NormalizePath(path), node, start, end)
}

// ArrPop removes and returns the element at index of the array at path.
// Index -1, the default, pops the last element.
func (s *Store) ArrPop(key, path string, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return "", docjson.ErrMissingDocument
	}
	return doc.ArrPop(docjson.NormalizePath(path), index)
}

// ArrTrim keeps [start, stop) of the array at path and returns the
// resulting length.
func (s *Store) ArrTrim(key, path string, start, stop int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return 0, docjson.ErrMissingDocument
	}
	return doc.ArrTrim(docjson.NormalizePath(path), start, stop)
}

// MergePatch applies an RFC 7386 merge patch at path under key.
func (s *Store) MergePatch(key, path string, patch []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	if !exists {
		return docjson.ErrMissingDocument
	}
	return doc.MergePatch(docjson.NormalizePath(path), patch)
}

// Keys returns the stored key names, for diagnostics and snapshots.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	return keys
}

func parseValues(payloads [][]byte) ([]*ir.Node, error) {
	values := make([]*ir.Node, len(payloads))
	for i, p := range payloads {
		node, err := parse.Parse(p)
		if err != nil {
			return nil, err
		}
		values[i] = node
	}
	return values, nil
}
