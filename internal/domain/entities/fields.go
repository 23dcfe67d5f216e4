package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field is one client-supplied key and its raw JSON value
type Field struct {
	Key   string
	Value json.RawMessage
}

// Fields is an ordered JSON object. Keys are unique; setting an existing key
// replaces its value in place.
type Fields []Field

// Get returns the raw value stored under key
func (f Fields) Get(key string) (json.RawMessage, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// String returns the value under key if it is a JSON string
func (f Fields) String(key string) (string, bool) {
	raw, ok := f.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Set stores value under key, keeping the original position of an existing key.
func (f *Fields) Set(key string, value json.RawMessage) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// SetString stores a string value under key
func (f *Fields) SetString(key, value string) {
	raw, _ := json.Marshal(value)
	f.Set(key, raw)
}

// Delete removes key if present
func (f *Fields) Delete(key string) {
	out := (*f)[:0]
	for _, field := range *f {
		if field.Key != key {
			out = append(out, field)
		}
	}
	*f = out
}

// Keys returns the keys in order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Key)
	}
	return keys
}

// Clone returns a deep copy
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for i, field := range f {
		out[i] = Field{Key: field.Key, Value: append(json.RawMessage(nil), field.Value...)}
	}
	return out
}

// WithoutReserved returns a copy without the server-owned keys
func (f Fields) WithoutReserved() Fields {
	out := make(Fields, 0, len(f))
	for _, field := range f.Clone() {
		if field.Key == KeyID || field.Key == KeyCreatedAt {
			continue
		}
		out = append(out, field)
	}
	return out
}

// MarshalJSON encodes the fields as a JSON object in order
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, field.Key, field.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order. null leaves the
// receiver untouched; any other non-object value is an error.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("decode fields: expected a JSON object")
	}

	out := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode fields: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode fields: unexpected key %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}

	*f = out
	return nil
}
