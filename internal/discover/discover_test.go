package discover

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"imgs2pdf/internal/models"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiles_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "img2.png", "img10.png", "img1.png", "notes.txt")

	got, err := Files(dir, []string{".png"}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"img1.png", "img2.png", "img10.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}

	got, err = Files(dir, []string{".png"}, true)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"img10.png", "img2.png", "img1.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files(reverse) = %v, want %v", got, want)
	}
}

func TestFiles_UnionAcrossExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page3.jpg", "page1.png", "page2.heic", "page4.gif")

	got, err := Files(dir, []string{".png", ".jpg", ".heic"}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"page1.png", "page2.heic", "page3.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}

func TestFiles_CaseSensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.PNG", "b.png")

	got, err := Files(dir, []string{".png"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"b.png"}) {
		t.Errorf("Files() = %v, want [b.png]", got)
	}
}

func TestFiles_OverlappingExtensionsListedOnce(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")

	got, err := Files(dir, []string{".png", "png", "g"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"a.png"}) {
		t.Errorf("Files() = %v, want [a.png]", got)
	}
}

func TestFiles_SkipsDirectoriesAndHidden(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, ".hidden.png", "real.png")
	if err := os.Mkdir(filepath.Join(dir, "folder.png"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Files(dir, []string{".png"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"real.png"}) {
		t.Errorf("Files() = %v, want [real.png]", got)
	}
}

func TestFiles_Empty(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")

	_, err := Files(dir, []string{".png"}, false)
	if !errors.Is(err, models.ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

func TestFiles_MissingFolder(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"), []string{".png"}, false)
	if !errors.Is(err, models.ErrFilesystem) {
		t.Errorf("expected ErrFilesystem, got %v", err)
	}
}

func TestSort(t *testing.T) {
	names := []string{"scan-10.jpg", "scan-9.jpg", "scan-100.jpg", "cover.jpg", "scan-1.jpg"}
	Sort(names, false)
	want := []string{"cover.jpg", "scan-1.jpg", "scan-9.jpg", "scan-10.jpg", "scan-100.jpg"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Sort() = %v, want %v", names, want)
	}
}
