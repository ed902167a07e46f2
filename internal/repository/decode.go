package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"skill-passport/internal/pkg/decode"
)

// parseDocument splits a stored document into raw records. A top level object
// is a single record and reports single=true. An empty document has no
// records.
func parseDocument(name string, doc []byte) ([]map[string]any, bool, error) {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return nil, false, nil
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, false, &ValidationError{Collection: name, Index: -1, Reason: err.Error()}
	}

	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}, true, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			rec, ok := item.(map[string]any)
			if !ok {
				return nil, false, &ValidationError{Collection: name, Index: i, Reason: fmt.Sprintf("record is %T, want object", item)}
			}
			out = append(out, rec)
		}
		return out, false, nil
	case nil:
		return nil, false, nil
	default:
		return nil, false, &ValidationError{Collection: name, Index: -1, Reason: fmt.Sprintf("document is %T, want array or object", v)}
	}
}

func decodeRecords[T any](name string, records []map[string]any) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		var item T
		if err := decode.Weak(rec, &item); err != nil {
			return nil, &ValidationError{Collection: name, Index: i, Reason: err.Error()}
		}
		out = append(out, item)
	}
	return out, nil
}

func loadRecords[T any](name string, doc []byte) ([]T, bool, error) {
	records, single, err := parseDocument(name, doc)
	if err != nil {
		return nil, false, err
	}
	out, err := decodeRecords[T](name, records)
	if err != nil {
		return nil, false, err
	}
	return out, single, nil
}

// objectKeyOrder returns, for each record of doc, the keys of the object
// under field in document order. Records without such an object get nil.
func objectKeyOrder(doc []byte, field string) [][]string {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return nil
	}

	var raws []json.RawMessage
	if doc[0] == '{' {
		raws = []json.RawMessage{doc}
	} else if err := json.Unmarshal(doc, &raws); err != nil {
		return nil
	}

	out := make([][]string, len(raws))
	for i, raw := range raws {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if v, ok := rec[field]; ok {
			out[i] = objectKeys(v)
		}
	}
	return out
}

func objectKeys(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		k, ok := tok.(string)
		if !ok {
			return nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
		keys = append(keys, k)
	}
	return keys
}

// rawKey renders an identifier field the way the weak decoder does.
func rawKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func marshalRecords(name string, records []map[string]any) ([]byte, error) {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, &ValidationError{Collection: name, Index: -1, Reason: err.Error()}
	}
	return b, nil
}

// toRecord converts a typed value to its stored field map.
func toRecord(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
