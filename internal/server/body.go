package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// readJSONBody reads at most limit bytes and decodes them as JSON.
// An empty body or a JSON value that is not an object decodes to an empty map.
// Exceeding limit returns ErrPayloadTooLarge and the connection is closed after the response.
func readJSONBody(w http.ResponseWriter, r *http.Request, limit int64) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.Header().Set("Connection", "close")
			return nil, fmt.Errorf("%w: limit %d bytes", ErrPayloadTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	body, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return body, nil
}
