package vizboard

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type capturedBlock struct {
	name    string
	caption string
	width   int
}

// captureSink records everything a render pass emits.
type captureSink struct {
	titles []string
	blocks []capturedBlock
	sizes  []int64
	failOn string
}

func (s *captureSink) Title(title string) error {
	s.titles = append(s.titles, title)
	return nil
}

func (s *captureSink) Image(img image.Image, e Entry, caption string) error {
	if e.Name == s.failOn {
		return errors.New("sink full")
	}
	s.blocks = append(s.blocks, capturedBlock{name: e.Name, caption: caption, width: img.Bounds().Dx()})
	s.sizes = append(s.sizes, e.Size)
	return nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testInsights() Insights {
	return NewInsights(map[string]string{
		"a.png": "Caption for a",
		"c.png": "Caption for c",
	})
}

func TestLookupMappedAndDefault(t *testing.T) {
	in := testInsights()
	tests := []struct {
		name string
		want string
	}{
		{"a.png", "Caption for a"},
		{"c.png", "Caption for c"},
		{"b.png", DefaultInsight},
		{"", DefaultInsight},
		{"A.PNG", DefaultInsight},
	}
	for _, tt := range tests {
		if got := in.Lookup(tt.name); got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if DefaultInsight != "No insight available for this image." {
		t.Errorf("DefaultInsight = %q", DefaultInsight)
	}
}

func TestLookupZeroValue(t *testing.T) {
	var in Insights
	if got := in.Lookup("a.png"); got != DefaultInsight {
		t.Errorf("Lookup on zero Insights = %q, want default", got)
	}
}

func TestListEntriesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := ListEntries(dir)
	var dirErr *DirectoryAccessError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryAccessError, got %v", err)
	}
	if dirErr.Dir != dir {
		t.Errorf("Dir = %q, want %q", dirErr.Dir, dir)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestListEntriesOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, path, "x")
	var dirErr *DirectoryAccessError
	if _, err := ListEntries(path); !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryAccessError for a file, got %v", err)
	}
}

func TestListEntriesIncludesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "x")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	names, err := ListEntries(dir)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(names) != 2 || names[0] != "b.txt" || names[1] != "sub" {
		t.Errorf("names = %v, want [b.txt sub]", names)
	}
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	writeFile(t, file, "x")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	if !IsRegularFile(file) {
		t.Error("expected regular file to report true")
	}
	if IsRegularFile(sub) {
		t.Error("expected directory to report false")
	}
	if IsRegularFile(filepath.Join(dir, "missing")) {
		t.Error("expected missing path to report false")
	}
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writePNG(t, good, 4, 3)
	bad := filepath.Join(dir, "b.txt")
	writeFile(t, bad, "not an image")

	img, format, err := DecodeImage(good)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}

	_, _, err = DecodeImage(bad)
	var decodeErr *ImageDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ImageDecodeError, got %v", err)
	}
	if decodeErr.Path != bad {
		t.Errorf("Path = %q, want %q", decodeErr.Path, bad)
	}
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("expected error to wrap image.ErrFormat, got %v", err)
	}
}

func TestRenderEmptyDirectory(t *testing.T) {
	r := &Renderer{Dir: t.TempDir(), Title: "Dashboard", Insights: testInsights()}
	sink := &captureSink{}

	n, err := r.Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n != 0 || len(sink.blocks) != 0 {
		t.Errorf("expected no blocks, got n=%d blocks=%v", n, sink.blocks)
	}
	if len(sink.titles) != 1 || sink.titles[0] != "Dashboard" {
		t.Errorf("titles = %v, want [Dashboard]", sink.titles)
	}
}

func TestRenderMissingDirectoryEmitsNothing(t *testing.T) {
	r := &Renderer{Dir: filepath.Join(t.TempDir(), "missing"), Title: "Dashboard"}
	sink := &captureSink{}

	_, err := r.Render(context.Background(), sink)
	var dirErr *DirectoryAccessError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryAccessError, got %v", err)
	}
	if len(sink.titles) != 0 || len(sink.blocks) != 0 {
		t.Errorf("expected nothing rendered, got titles=%v blocks=%v", sink.titles, sink.blocks)
	}
}

func TestRenderPairsCaptionsWithFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "b.png"), 3, 2)
	writePNG(t, filepath.Join(dir, "c.png"), 5, 2)

	r := &Renderer{Dir: dir, Title: "Dashboard", Insights: testInsights()}
	sink := &captureSink{}
	n, err := r.Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []capturedBlock{
		{name: "a.png", caption: "Caption for a", width: 2},
		{name: "b.png", caption: DefaultInsight, width: 3},
		{name: "c.png", caption: "Caption for c", width: 5},
	}
	if n != len(want) || len(sink.blocks) != len(want) {
		t.Fatalf("n=%d blocks=%v, want %d blocks", n, sink.blocks, len(want))
	}
	for i, b := range sink.blocks {
		if b != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestRenderSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	// A directory that would fail to decode if it were opened as an image.
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := &Renderer{Dir: dir, Title: "Dashboard", Insights: testInsights()}
	sink := &captureSink{}
	n, err := r.Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n != 1 || sink.blocks[0].name != "a.png" {
		t.Errorf("expected only a.png, got %v", sink.blocks)
	}
}

func TestRenderAbortsOnUndecodableFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	writeFile(t, filepath.Join(dir, "b.txt"), "plain text")
	writePNG(t, filepath.Join(dir, "c.png"), 2, 2)

	r := &Renderer{Dir: dir, Title: "Dashboard", Insights: testInsights()}
	sink := &captureSink{}
	n, err := r.Render(context.Background(), sink)

	var decodeErr *ImageDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ImageDecodeError, got %v", err)
	}
	if filepath.Base(decodeErr.Path) != "b.txt" {
		t.Errorf("decode error path = %q, want b.txt", decodeErr.Path)
	}
	if n != 1 || len(sink.blocks) != 1 || sink.blocks[0].caption != "Caption for a" {
		t.Errorf("expected a.png rendered before abort, got n=%d blocks=%v", n, sink.blocks)
	}
}

func TestRenderAbortsOnSinkError(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "c.png"), 2, 2)

	r := &Renderer{Dir: dir, Title: "Dashboard"}
	sink := &captureSink{failOn: "a.png"}
	n, err := r.Render(context.Background(), sink)
	if err == nil {
		t.Fatal("expected sink error")
	}
	if n != 0 || len(sink.blocks) != 0 {
		t.Errorf("expected pass to stop at the failing block, got n=%d", n)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "b.png"), 2, 2)

	r := &Renderer{Dir: dir, Title: "Dashboard", Insights: testInsights()}
	first, second := &captureSink{}, &captureSink{}
	if _, err := r.Render(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(context.Background(), second); err != nil {
		t.Fatal(err)
	}
	if len(first.blocks) != len(second.blocks) {
		t.Fatalf("block counts differ: %d vs %d", len(first.blocks), len(second.blocks))
	}
	for i := range first.blocks {
		if first.blocks[i] != second.blocks[i] {
			t.Errorf("block %d differs: %+v vs %+v", i, first.blocks[i], second.blocks[i])
		}
	}
}

func TestRenderStopsOnCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Renderer{Dir: dir, Title: "Dashboard"}
	sink := &captureSink{}
	if _, err := r.Render(ctx, sink); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.blocks) != 0 {
		t.Errorf("expected no blocks, got %v", sink.blocks)
	}
}

func TestRenderReportsFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 8, 8)
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	r := &Renderer{Dir: dir, Title: "Dashboard"}
	sink := &captureSink{}
	if _, err := r.Render(context.Background(), sink); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(sink.sizes) != 1 || sink.sizes[0] != fi.Size() || fi.Size() == 0 {
		t.Errorf("sizes = %v, want [%d]", sink.sizes, fi.Size())
	}
}

func TestRegularFileInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "hello")

	fi, ok := regularFileInfo(path)
	if !ok || fi.Size() != 5 {
		t.Errorf("regularFileInfo(file) = %v, %v", fi, ok)
	}
	if fi, ok := regularFileInfo(dir); ok || fi != nil {
		t.Errorf("regularFileInfo(dir) = %v, %v, want nil, false", fi, ok)
	}
}
