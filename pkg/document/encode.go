package document

import (
	"github.com/goccy/go-json"

	"github.com/courseforge/markup/internal/errors"
)

// EncodeJSON serializes a rendered JSON tree.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.New(errors.CodeDocumentEncode).Wrap(err)
	}
	return data, nil
}

// EncodeJSONIndent is like EncodeJSON with two-space indentation.
func EncodeJSONIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.New(errors.CodeDocumentEncode).Wrap(err)
	}
	return data, nil
}
