package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// decodeObject reads a JSON object body the way a permissive JSON body
// parser would: non-JSON content types and empty bodies give an empty
// object, arrays give an empty object, and only objects or arrays are
// accepted at the top level.
func decodeObject(w http.ResponseWriter, r *http.Request, limit int64) (map[string]any, error) {
	const op = "api.decode_body"

	if !isJSONContent(r.Header.Get("Content-Type")) {
		return map[string]any{}, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, WrapKind(op, ErrPayloadTooLarge, err)
		}
		return nil, WrapKind(op, ErrBadRequest, err)
	}

	data = bytes.Trim(data, " \t\r\n")
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if data[0] != '{' && data[0] != '[' {
		return nil, WrapKind(op, ErrBadRequest, errors.New("top-level value must be an object or array"))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, WrapKind(op, ErrBadRequest, errors.New("unexpected data after top-level value"))
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return obj, nil
}

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
