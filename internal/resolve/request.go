package resolve

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseRequest decodes a serialized request. The document must be a JSON
// object; scalar fields are coerced to text and absent fields default to
// empty. Anything else fails with ErrInvalidInput.
func ParseRequest(data []byte) (Request, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var req Request
	var err error
	if req.Base, err = coerceString("base", fields["base"]); err != nil {
		return Request{}, err
	}
	if req.Ours, err = coerceString("ours", fields["ours"]); err != nil {
		return Request{}, err
	}
	if req.Theirs, err = coerceString("theirs", fields["theirs"]); err != nil {
		return Request{}, err
	}
	if req.Source, err = coerceString("source", fields["source"]); err != nil {
		return Request{}, err
	}
	return req, nil
}

// coerceString converts a decoded JSON scalar to text. Nested objects and
// arrays are not coercible.
func coerceString(name string, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("%w: field %s is not a string", ErrInvalidInput, name)
	}
}
