package grid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGVZRoundtrip(t *testing.T) {
	g := rampGrid(t)
	g.Set(0, 0, 0, 1.5e-30) //something that needs the full float formatting
	fname := filepath.Join(t.TempDir(), "density.gvz")

	if err := WriteFile(fname, g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(g.Shape(), back.Shape()); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.Data(), back.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.Cell().RawMatrix().Data, back.Cell().RawMatrix().Data); diff != "" {
		t.Errorf("cell mismatch (-want +got):\n%s", diff)
	}
}

func TestGVZMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.gvz"))
	var gerr Error
	if !errors.As(err, &gerr) {
		t.Fatalf("want a grid.Error, got %T", err)
	}
	if gerr.FileName() == "" || !gerr.Critical() {
		t.Errorf("error should carry the filename and be critical: %+v", gerr)
	}
	if gerr.Format() != "gvz" {
		t.Errorf("format %q, want gvz", gerr.Format())
	}
}

func TestGVZRejectsGarbage(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "garbage.gvz")
	if err := os.WriteFile(fname, []byte("not a gvz file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(fname); err == nil {
		t.Error("garbage input must not parse")
	}
}

func TestGVZTruncated(t *testing.T) {
	g := rampGrid(t)
	fname := filepath.Join(t.TempDir(), "density.gvz")
	if err := WriteFile(fname, g); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	//chopping the compressed stream must surface as an error, not a short grid
	if err := os.WriteFile(fname, raw[:len(raw)/2], 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(fname); err == nil {
		t.Error("truncated input must not parse")
	}
}
