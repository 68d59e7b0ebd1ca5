package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/docjson-io/docjson/debug"
	"github.com/docjson-io/docjson/parse"
	"github.com/docjson-io/docjson/store"
)

// Server dispatches JSON-RPC requests to a document store.
type Server struct {
	store  *store.Store
	logger *zap.Logger
}

type setParams struct {
	Key    string          `json:"key"`
	Path   string          `json:"path"`
	Value  json.RawMessage `json:"value"`
	NX     bool            `json:"nx,omitempty"`
	XX     bool            `json:"xx,omitempty"`
	Format string          `json:"format,omitempty"`
}

type getParams struct {
	Key   string   `json:"key"`
	Paths []string `json:"paths,omitempty"`
}

type mgetParams struct {
	Keys []string `json:"keys"`
	Path string   `json:"path"`
}

type keyPathParams struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

type numParams struct {
	Key   string  `json:"key"`
	Path  string  `json:"path"`
	Value float64 `json:"value"`
}

type valueParams struct {
	Key   string          `json:"key"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

type valuesParams struct {
	Key    string            `json:"key"`
	Path   string            `json:"path"`
	Values []json.RawMessage `json:"values"`
}

type arrInsertParams struct {
	Key    string            `json:"key"`
	Path   string            `json:"path"`
	Index  int               `json:"index"`
	Values []json.RawMessage `json:"values"`
}

type arrIndexParams struct {
	Key   string          `json:"key"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
	Start int             `json:"start,omitempty"`
	End   int             `json:"end,omitempty"`
}

type arrPopParams struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Index *int   `json:"index,omitempty"`
}

type arrTrimParams struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Start int    `json:"start"`
	Stop  int    `json:"stop"`
}

type fileParams struct {
	Path string `json:"path"`
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if debug.Server() {
		debug.Logf("<- %s %s\n", req.Method(), string(req.Params()))
	}
	res, err := s.dispatch(ctx, req)
	if err != nil {
		s.logger.Debug("request failed",
			zap.String("method", req.Method()),
			zap.Error(err))
	}
	return reply(ctx, res, err)
}

func (s *Server) dispatch(ctx context.Context, req jsonrpc2.Request) (interface{}, error) {
	switch req.Method() {
	case "json.set":
		var p setParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		opts := store.SetOptions{NX: p.NX, XX: p.XX}
		if p.Format != "" {
			f, err := parse.FormatFromString(p.Format)
			if err != nil {
				return nil, err
			}
			opts.Format = f
		}
		ok, err := s.store.Set(p.Key, p.Path, []byte(p.Value), opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return "OK", nil
	case "json.get":
		var p getParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		res, ok, err := s.store.Get(p.Key, p.Paths...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return json.RawMessage(res), nil
	case "json.mget":
		var p mgetParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		vals, err := s.store.MGet(p.Path, p.Keys...)
		if err != nil {
			return nil, err
		}
		res := make([]json.RawMessage, len(vals))
		for i, v := range vals {
			if v != nil {
				res[i] = json.RawMessage(*v)
			}
		}
		return res, nil
	case "json.del", "json.forget":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.Del(p.Key, p.Path)
	case "json.type":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		t, ok, err := s.store.Type(p.Key, p.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return t, nil
	case "json.strlen":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return optionalInt(s.store.StrLen(p.Key, p.Path))
	case "json.strappend":
		var p valueParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.StrAppend(p.Key, p.Path, []byte(p.Value))
	case "json.numincrby":
		var p numParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		res, err := s.store.NumIncrBy(p.Key, p.Path, p.Value)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(res), nil
	case "json.nummultby":
		var p numParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		res, err := s.store.NumMultBy(p.Key, p.Path, p.Value)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(res), nil
	case "json.numpowby":
		var p numParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		res, err := s.store.NumPowBy(p.Key, p.Path, p.Value)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(res), nil
	case "json.arrappend":
		var p valuesParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.ArrAppend(p.Key, p.Path, rawBytes(p.Values)...)
	case "json.arrinsert":
		var p arrInsertParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.ArrInsert(p.Key, p.Path, p.Index, rawBytes(p.Values)...)
	case "json.arrindex":
		var p arrIndexParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.ArrIndex(p.Key, p.Path, []byte(p.Value), p.Start, p.End)
	case "json.arrlen":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return optionalInt(s.store.ArrLen(p.Key, p.Path))
	case "json.arrpop":
		var p arrPopParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		index := -1
		if p.Index != nil {
			index = *p.Index
		}
		res, err := s.store.ArrPop(p.Key, p.Path, index)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(res), nil
	case "json.arrtrim":
		var p arrTrimParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return s.store.ArrTrim(p.Key, p.Path, p.Start, p.Stop)
	case "json.objkeys":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		keys, ok, err := s.store.ObjKeys(p.Key, p.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return keys, nil
	case "json.objlen":
		var p keyPathParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		return optionalInt(s.store.ObjLen(p.Key, p.Path))
	case "json.merge":
		var p valueParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		if err := s.store.MergePatch(p.Key, p.Path, []byte(p.Value)); err != nil {
			return nil, err
		}
		return "OK", nil
	case "store.keys":
		return s.store.Keys(), nil
	case "store.snapshot":
		var p fileParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		f, err := os.Create(p.Path)
		if err != nil {
			return nil, err
		}
		if err := s.store.Snapshot(f); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		return "OK", nil
	case "store.load":
		var p fileParams
		if err := unmarshalParams(req, &p); err != nil {
			return nil, err
		}
		f, err := os.Open(p.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := s.store.Load(f); err != nil {
			return nil, err
		}
		return "OK", nil
	default:
		return nil, jsonrpc2.ErrMethodNotFound
	}
}

func unmarshalParams(req jsonrpc2.Request, v interface{}) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return fmt.Errorf("%w: %s", jsonrpc2.ErrInvalidParams, err)
	}
	return nil
}

// optionalInt maps a missing key to a null result.
func optionalInt(n int, ok bool, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return n, nil
}

func rawBytes(vals []json.RawMessage) [][]byte {
	res := make([][]byte, len(vals))
	for i, v := range vals {
		res[i] = []byte(v)
	}
	return res
}
