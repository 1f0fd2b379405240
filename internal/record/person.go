package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	FieldName       = "name"
	FieldID         = "id"
	FieldImages     = "images"
	FieldImage      = "image"
	FieldCleanedBio = "cleaned_bio"
)

// Person is a loosely structured biographical record. Fields are kept as raw
// JSON in source order so a read-modify-write cycle does not reshuffle keys.
type Person struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

func NewPerson() *Person {
	return &Person{fields: orderedmap.New[string, json.RawMessage]()}
}

// ParsePerson decodes a single JSON object.
func ParsePerson(data []byte) (*Person, error) {
	p := NewPerson()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Person) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("person record must be a JSON object")
	}
	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	p.fields = fields
	return nil
}

func (p *Person) MarshalJSON() ([]byte, error) {
	if p == nil || p.fields == nil || p.fields.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := p.fields.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(pair.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns field names in source order.
func (p *Person) Keys() []string {
	if p == nil || p.fields == nil {
		return nil
	}
	keys := make([]string, 0, p.fields.Len())
	for pair := p.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Indent renders the record as 2-space indented JSON with non-ASCII text kept verbatim.
func (p *Person) Indent() (string, error) {
	if p.Len() == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (p *Person) Len() int {
	if p == nil || p.fields == nil {
		return 0
	}
	return p.fields.Len()
}

// Raw returns the undecoded value stored under key.
func (p *Person) Raw(key string) (json.RawMessage, bool) {
	if p == nil || p.fields == nil {
		return nil, false
	}
	return p.fields.Get(key)
}

// String returns the value under key when it is a JSON string.
func (p *Person) String(key string) string {
	raw, ok := p.Raw(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Set stores v under key, keeping the key's position if it already exists.
func (p *Person) Set(key string, v any) error {
	raw, err := marshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if p.fields == nil {
		p.fields = orderedmap.New[string, json.RawMessage]()
	}
	p.fields.Set(key, raw)
	return nil
}

func (p *Person) Name() string {
	return p.String(FieldName)
}

// Label identifies the record in log lines: id when present, otherwise name.
func (p *Person) Label() string {
	if raw, ok := p.Raw(FieldID); ok {
		var id any
		if err := json.Unmarshal(raw, &id); err == nil && id != nil {
			return fmt.Sprint(id)
		}
	}
	if n := p.Name(); n != "" {
		return n
	}
	return "<unnamed>"
}

// Images returns non-empty image URLs from "images", falling back to "image".
// Both a single string and an array of strings are accepted.
func (p *Person) Images() []string {
	for _, key := range []string{FieldImages, FieldImage} {
		raw, ok := p.Raw(key)
		if !ok {
			continue
		}
		if urls := decodeStrings(raw); len(urls) > 0 {
			return urls
		}
	}
	return nil
}

// AppendText appends text to the string field key, creating it when missing.
func (p *Person) AppendText(key, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	current := p.String(key)
	if current != "" && !strings.HasSuffix(current, " ") {
		current += " "
	}
	return p.Set(key, current+text)
}

func decodeStrings(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil
		}
		list = []string{single}
	}
	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func marshalNoEscape(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
