package space

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/taibuivan/stellar/internal/platform/validate"
)

// Fields is a partial attribute map decoded from a request body. Values stay
// raw until the owning entity's setter interprets them.
type Fields map[string]json.RawMessage

// FieldsReader produces the update attributes once the target entity has
// been found, so a missing entity is reported ahead of a malformed body.
type FieldsReader func() (Fields, error)

// setter validates one raw attribute value and writes it onto entity.
// It returns a [*validate.InvalidValueError] when the value is rejected.
type setter[T any] func(entity *T, raw json.RawMessage) error

// fieldSet maps writable attribute names to their setters.
type fieldSet[T any] map[string]setter[T]

// assign applies fields to entity atomically: every write goes to a draft
// copy and the draft replaces entity only if no setter failed. Keys are
// visited in sorted order so the reported errors are deterministic.
func assign[T any](entity *T, fields Fields, setters fieldSet[T]) error {
	draft := *entity
	validator := &validate.Validator{}

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if key == FieldID {
			continue
		}
		set, ok := setters[key]
		if !ok {
			validator.Check(key, validate.Invalid(key, fmt.Sprintf("unknown attribute %q", key)))
			continue
		}
		validator.Check(key, set(&draft, fields[key]))
	}

	if err := validator.Err(); err != nil {
		return err
	}

	*entity = draft
	return nil
}

// withRequired returns a copy of fields in which every absent required key
// is present as JSON null, so creation runs the same predicates as updates.
func withRequired(fields Fields, required ...string) Fields {
	complete := make(Fields, len(fields)+len(required))
	maps.Copy(complete, fields)
	for _, key := range required {
		if _, ok := complete[key]; !ok {
			complete[key] = json.RawMessage("null")
		}
	}
	return complete
}

// # Value decoding

// decodeText reads a JSON string; null decodes to "".
func decodeText(field string, raw json.RawMessage) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", validate.Invalid(field, field+" must be a string")
	}
	return value, nil
}

// decodeOptionalText reads a JSON string or null.
func decodeOptionalText(field string, raw json.RawMessage) (*string, error) {
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, validate.Invalid(field, field+" must be a string or null")
	}
	return value, nil
}

// decodeID reads a JSON integer identifier; null decodes to 0.
func decodeID(field string, raw json.RawMessage) (int64, error) {
	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, validate.Invalid(field, field+" must be an integer")
	}
	return value, nil
}

// decodeOptionalInt reads a JSON integer or null.
func decodeOptionalInt(field string, raw json.RawMessage) (*int64, error) {
	var value *int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, validate.Invalid(field, field+" must be an integer or null")
	}
	return value, nil
}
