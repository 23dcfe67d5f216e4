package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Reserved keys owned by the server. They are never kept in Fields.
const (
	KeyID        = "id"
	KeyCreatedAt = "createdAt"
)

// Post represents a blog post in the collection
type Post struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	// Fields holds the client-supplied payload in the order it was received.
	Fields Fields `json:"-"`
}

// NewPost builds a post from a client payload. Reserved keys in the payload
// are dropped; the caller supplies identity and creation time.
func NewPost(id string, createdAt time.Time, fields Fields) *Post {
	return &Post{
		ID:        id,
		CreatedAt: createdAt,
		Fields:    fields.WithoutReserved(),
	}
}

// Title returns the post title when it is a JSON string
func (p *Post) Title() string {
	title, _ := p.Fields.String("title")
	return title
}

// Clone returns a deep copy of the post
func (p *Post) Clone() *Post {
	return &Post{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Fields:    p.Fields.Clone(),
	}
}

// MarshalJSON writes client fields first, then id and createdAt.
func (p Post) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for _, f := range p.Fields {
		if f.Key == KeyID || f.Key == KeyCreatedAt {
			continue
		}
		if err := writeMember(&buf, f.Key, f.Value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	id, err := json.Marshal(p.ID)
	if err != nil {
		return nil, err
	}
	if err := writeMember(&buf, KeyID, id); err != nil {
		return nil, err
	}

	if !p.CreatedAt.IsZero() {
		createdAt, err := json.Marshal(p.CreatedAt)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, KeyCreatedAt, createdAt); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a stored record. id must be a string; createdAt, when
// present and not null, must be a timestamp.
func (p *Post) UnmarshalJSON(data []byte) error {
	var fields Fields
	if err := fields.UnmarshalJSON(data); err != nil {
		return err
	}
	if fields == nil && bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("post record is null")
	}

	post := Post{}
	if raw, ok := fields.Get(KeyID); ok {
		if err := json.Unmarshal(raw, &post.ID); err != nil {
			return fmt.Errorf("post id must be a string: %w", err)
		}
	}
	if raw, ok := fields.Get(KeyCreatedAt); ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &post.CreatedAt); err != nil {
			return fmt.Errorf("post %q createdAt: %w", post.ID, err)
		}
	}
	post.Fields = fields.WithoutReserved()

	*p = post
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value json.RawMessage) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	if len(value) == 0 {
		buf.WriteString("null")
		return nil
	}
	buf.Write(value)
	return nil
}
