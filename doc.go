// Package docjson extends a key-value store with a native JSON document
// type: one JSON tree stored as the value of a key, addressable and
// mutable through path expressions rather than whole-value replacement.
//
// A Document owns one tree and exposes path-addressed reads and
// type-checked per-value operations (string append, array
// append/insert/pop/trim/index, object keys, numeric arithmetic). Writes
// rebuild only the ancestor chain of changed nodes, sharing everything
// else with the previous tree. The store package maps the document API
// onto a keyed store with the compatibility command surface; parse and
// encode handle payload ingest and JSON output.
package docjson
