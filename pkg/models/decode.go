package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeData converts an untyped payload into T using the payload's json
// field names.
func DecodeData[T any](data Data) (T, error) {
	var out T
	if err := DecodeInto(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeInto decodes data into the struct or map pointed to by out.
func DecodeInto(data Data, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to decode document data: %w", err)
	}
	return nil
}
