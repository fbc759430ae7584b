package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; a transaction is a handful of fields.
const maxBodyBytes = 1 << 16

// parseJSON decodes the request body into T. Unknown fields, trailing data
// and empty bodies are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("request body is empty")
		}
		return v, err
	}
	if dec.More() {
		return v, fmt.Errorf("request body must contain a single JSON object")
	}

	return v, nil
}
