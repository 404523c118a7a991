package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode parses exactly one JSON document into v. Numbers decode as
// json.Number so they re-encode with the digits they were written with.
func Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

// checkEncodable reports whether value can be written as JSON.
func checkEncodable(value any) error {
	if _, err := json.Marshal(value); err != nil {
		return fmt.Errorf("value is not JSON encodable: %w", err)
	}
	return nil
}
