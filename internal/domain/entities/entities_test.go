package entities

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFieldsKeepOrder(t *testing.T) {
	var f Fields
	if err := json.Unmarshal([]byte(`{"zeta":1,"alpha":"a","mid":{"x":[1,2]}}`), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if got := f.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}

	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"zeta":1,"alpha":"a","mid":{"x":[1,2]}}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestFieldsDuplicateKeyLastWins(t *testing.T) {
	var f Fields
	if err := json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := f.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", got)
	}
	if raw, _ := f.Get("a"); string(raw) != "3" {
		t.Errorf("a = %s, want 3", raw)
	}
}

func TestFieldsRejectNonObject(t *testing.T) {
	for _, input := range []string{`[]`, `"x"`, `12`} {
		var f Fields
		if err := json.Unmarshal([]byte(input), &f); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", input)
		}
	}
}

func TestFieldsString(t *testing.T) {
	var f Fields
	f.SetString("title", "hello")
	f.Set("count", json.RawMessage(`4`))

	if s, ok := f.String("title"); !ok || s != "hello" {
		t.Errorf("String(title) = %q, %v", s, ok)
	}
	if _, ok := f.String("count"); ok {
		t.Error("String(count) should fail for a number")
	}
	if _, ok := f.String("missing"); ok {
		t.Error("String(missing) should fail")
	}

	f.Delete("title")
	if _, ok := f.Get("title"); ok {
		t.Error("title still present after Delete")
	}
}

func TestPostMarshalOrder(t *testing.T) {
	var fields Fields
	fields.SetString("title", "Intro")
	fields.SetString("name", "Ada")

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewPost("abc", created, fields)

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"title":"Intro","name":"Ada","id":"abc","createdAt":"2024-03-01T12:00:00Z"}`
	if string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}

func TestNewPostDropsReservedKeys(t *testing.T) {
	var fields Fields
	fields.SetString("id", "client-chosen")
	fields.SetString("createdAt", "yesterday")
	fields.SetString("title", "x")

	p := NewPost("server-id", time.Now(), fields)
	if p.ID != "server-id" {
		t.Errorf("ID = %q", p.ID)
	}
	if got := p.Fields.Keys(); !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("Keys = %v, want [title]", got)
	}
	// caller's payload is left alone
	if len(fields) != 3 {
		t.Errorf("input fields mutated: %v", fields.Keys())
	}
}

func TestPostUnmarshal(t *testing.T) {
	var p Post
	err := json.Unmarshal([]byte(`{"title":"T","id":"p1","createdAt":"2021-05-04T10:20:30.123Z","tags":["a"]}`), &p)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
	if p.Title() != "T" {
		t.Errorf("Title = %q", p.Title())
	}
	if got := p.Fields.Keys(); !reflect.DeepEqual(got, []string{"title", "tags"}) {
		t.Errorf("Keys = %v", got)
	}
}

func TestPostUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"numeric id", `{"id":12}`},
		{"bad createdAt", `{"id":"a","createdAt":"not a time"}`},
		{"array", `[1]`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Post
			if err := json.Unmarshal([]byte(tt.input), &p); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tt.input)
			}
		})
	}
}

func TestPostWithoutCreatedAt(t *testing.T) {
	var p Post
	if err := json.Unmarshal([]byte(`{"id":"legacy","title":"old"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"title":"old","id":"legacy"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestErrorClassification(t *testing.T) {
	nf := &NotFoundError{ID: "x1"}
	if !errors.Is(nf, ErrPostNotFound) {
		t.Error("NotFoundError should match ErrPostNotFound")
	}
	if nf.Error() != "Post with id x1 not found!" {
		t.Errorf("Error = %q", nf.Error())
	}

	cause := errors.New("disk full")
	var wErr error = &StoreWriteError{Path: "/tmp/p.json", Err: cause}
	if !errors.Is(wErr, cause) {
		t.Error("StoreWriteError should unwrap to its cause")
	}

	ve := &ValidationError{Violations: []Violation{{Field: "name", Message: "Name is a mandatory field!"}}}
	if !errors.Is(ve, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
}
