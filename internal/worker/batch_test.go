package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/policylens/internal/model"
)

// MockDigester implements Digester
type MockDigester struct {
	FailPaths map[string]bool
}

func (m *MockDigester) DigestFile(ctx context.Context, path string) (*model.DigestReport, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.FailPaths[path] {
		return nil, model.ErrNotAPolicyDocument
	}
	return &model.DigestReport{Source: path, IsPolicy: true}, nil
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	processor := NewBatchProcessor(&MockDigester{}, 2)

	paths := []string{"a.txt", "b.txt", "c.txt"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], res.Path)
		}
		if res.Report == nil || res.Report.Source != paths[i] {
			t.Errorf("result %d: expected report for %s", i, paths[i])
		}
	}
}

func TestBatchProcessor_ProcessPaths_Error(t *testing.T) {
	processor := NewBatchProcessor(&MockDigester{FailPaths: map[string]bool{"recipe.txt": true}}, 2)

	results := processor.ProcessPaths(context.Background(), []string{"policy.txt", "recipe.txt"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Error != nil {
		t.Errorf("expected success for policy.txt, got %v", results[0].Error)
	}
	if !errors.Is(results[1].Error, model.ErrNotAPolicyDocument) {
		t.Errorf("expected ErrNotAPolicyDocument, got %v", results[1].Error)
	}
	if results[1].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockDigester{}, 2)

	results := processor.ProcessPaths(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	list := writeList(t, "a.txt\n/abs/b.txt\n# comment\n\nc.txt\n")
	processor := NewBatchProcessor(&MockDigester{}, 2)

	results, err := processor.ProcessFile(context.Background(), list)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	base := filepath.Dir(list)
	expected := []string{filepath.Join(base, "a.txt"), "/abs/b.txt", filepath.Join(base, "c.txt")}
	for i, res := range results {
		if res.Path != expected[i] {
			t.Errorf("result %d: expected %s, got %s", i, expected[i], res.Path)
		}
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockDigester{}, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	list := writeList(t, "")
	processor := NewBatchProcessor(&MockDigester{}, 2)

	results, err := processor.ProcessFile(context.Background(), list)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty file, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	list := writeList(t, "health.txt\n# comment\nmotor.html\n   \nhome.md   \nhealth.txt\n")

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	expected := []string{"health.txt", "motor.html", "home.md"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d", len(expected), len(paths))
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("expected path %s at index %d, got %s", expected[i], i, p)
		}
	}
}

func TestDigestResult_GetError(t *testing.T) {
	r1 := &DigestResult{Path: "a.txt"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("digest failed")
	r2 := &DigestResult{Path: "a.txt", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
