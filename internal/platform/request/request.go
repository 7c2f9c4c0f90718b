// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stellar/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails or anything but
    whitespace follows the first value, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeFields reads a JSON object body as an attribute map, keeping each
value raw so that the entity model decides how to interpret it.

Returns:
  - map[string]json.RawMessage: one entry per attribute present in the body
  - error: validate.ErrInvalidJSON if the body is not a JSON object
*/
func DecodeFields(request *http.Request) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := DecodeJSON(request, &fields); err != nil {
		return nil, err
	}

	// "null" decodes into a nil map without error
	if fields == nil {
		return nil, validate.ErrInvalidJSON
	}

	for key, raw := range fields {
		fields[key] = bytes.TrimSpace(raw)
	}
	return fields, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter as a positive integer identifier.

Returns:
  - int64: the identifier
  - bool: false when the parameter is missing, malformed or not positive
*/
func IntID(request *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(Param(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
