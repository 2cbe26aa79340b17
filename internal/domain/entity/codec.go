package entity

import (
	"bytes"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is a decoded JSON object whose member values are still raw
type Document map[string]json.RawMessage

// isNull reports a JSON null member. jsoniter hands out a null member of a
// Document as an empty RawMessage rather than the literal.
func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeField[T any](doc Document, name string, field Optional[T]) error {
	v, ok := field.Lookup()
	if !ok {
		return nil
	}
	raw, err := codec.Marshal(v)
	if err != nil {
		return &FieldError{Field: name, Err: err}
	}
	doc[name] = raw
	return nil
}

// decodeField sets field from doc[name] unless the key is missing or null
func decodeField[T any](doc Document, name string, field *Optional[T]) error {
	raw, ok := doc[name]
	if !ok || isNull(raw) {
		return nil
	}
	var v T
	if err := codec.Unmarshal(raw, &v); err != nil {
		return &FieldError{Field: name, Err: err}
	}
	field.Set(v)
	return nil
}
