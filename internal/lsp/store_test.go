package lsp

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore(t *testing.T) {
	s := NewStore()
	uri := PathToURI(filepath.FromSlash("/tmp/prog.c"))
	doc := s.Set(uri, "int a = 1;", 1)
	if doc.Path != filepath.FromSlash("/tmp/prog.c") || doc.Version != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	s.Set(uri, "int a = 2;", 2)
	s.Set("untitled:scratch.grammar", "", 1)

	got, ok := s.Get(uri)
	if !ok || got.Text != "int a = 2;" || got.Version != 2 {
		t.Fatalf("Get = %+v %v", got, ok)
	}
	if want := []string{uri, "untitled:scratch.grammar"}; !reflect.DeepEqual(s.URIs(), want) {
		t.Fatalf("URIs = %v", s.URIs())
	}

	s.Delete(uri)
	if _, ok := s.Get(uri); ok {
		t.Fatal("document still present after Delete")
	}
}

func TestUriToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/me/a%20b.c", filepath.FromSlash("/home/me/a b.c")},
		{"untitled:Untitled-1.grammar", "Untitled-1.grammar"},
		{"inmemory:///buf/x.c", "/buf/x.c"},
	}
	for _, tt := range tests {
		if got := UriToPath(tt.uri); got != tt.want {
			t.Errorf("UriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
