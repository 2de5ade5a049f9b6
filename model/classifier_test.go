package model

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	content := "dog\n\n  cat  \nbird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	labels, err := loadLabels(path)
	if err != nil {
		t.Fatalf("loadLabels() error = %v", err)
	}
	if want := []string{"dog", "cat", "bird"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("loadLabels() = %v, want %v", labels, want)
	}
}

func TestLoadLabelsErrors(t *testing.T) {
	if _, err := loadLabels(""); err == nil {
		t.Error("loadLabels(\"\") should fail")
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("\n \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadLabels(empty); err == nil {
		t.Error("loadLabels() on an all-blank file should fail")
	}
}
