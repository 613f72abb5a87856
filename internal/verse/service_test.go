package verse

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockGenerator struct {
	reply string
	err   error
	got   string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.got = prompt
	return m.reply, m.err
}

func TestLookup_RendersQueryIntoPrompt(t *testing.T) {
	g := &mockGenerator{reply: "📖 *Psalm 46:1*"}
	s := New(g)

	out, err := s.Lookup(context.Background(), "Lord, give me strength")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "📖 *Psalm 46:1*" {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(g.got, `"Lord, give me strength"`) {
		t.Errorf("prompt missing the query: %q", g.got)
	}
}

func TestLookup_TrimsGeneration(t *testing.T) {
	g := &mockGenerator{reply: "\n  verse text  \n"}
	s := New(g)

	out, err := s.Lookup(context.Background(), "hope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "verse text" {
		t.Errorf("out = %q, want trimmed", out)
	}
}

func TestLookup_WrapsGeneratorError(t *testing.T) {
	g := &mockGenerator{err: errors.New("rate limited")}
	s := New(g)

	if _, err := s.Lookup(context.Background(), "hope"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPromptTemplate_HasSingleQueryPlaceholder(t *testing.T) {
	if got := strings.Count(promptTemplate, "%s"); got != 1 {
		t.Fatalf("prompt template has %d %%s placeholders, want 1", got)
	}
}
