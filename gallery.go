// Package vizboard is an image gallery dashboard built with Go, Echo, and templ.
// It lists the images in a directory and renders each one with a caption
// looked up from a static filename-to-insight mapping.
//
// The core is a single render pass (Renderer.Render) that writes to a Sink.
// The HTTP server and the static render command are two different sinks
// over the same pass.
package vizboard

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Entry is a directory entry that passed the regular-file check.
type Entry struct {
	Name   string
	Path   string
	Format string // decoder name, e.g. "png"
	Size   int64
}

// Sink is the output surface of a render pass.
type Sink interface {
	Title(title string) error
	Image(img image.Image, e Entry, caption string) error
}

// Renderer renders every regular file in Dir as an image with its insight.
type Renderer struct {
	Dir      string
	Title    string
	Insights Insights
}

// ListEntries returns the names of the entries in dir, in the order the
// filesystem listing reports them (os.ReadDir sorts by name).
func ListEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// IsRegularFile reports whether path is a regular file. Symlinks are
// followed; missing paths, directories and special files report false.
func IsRegularFile(path string) bool {
	_, ok := regularFileInfo(path)
	return ok
}

// regularFileInfo stats path once and returns its info when it is a regular file.
func regularFileInfo(path string) (os.FileInfo, bool) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, false
	}
	return fi, true
}

// DecodeImage opens path and decodes it, returning the image and its format name.
func DecodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ImageDecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &ImageDecodeError{Path: path, Err: err}
	}
	return img, format, nil
}

// Render executes one render pass and returns the number of image blocks
// emitted. The directory is listed before anything is written to sink, so a
// DirectoryAccessError leaves the sink untouched. The first decode or sink
// error aborts the pass, as does cancellation of ctx, which is checked
// between entries.
func (r *Renderer) Render(ctx context.Context, sink Sink) (int, error) {
	names, err := ListEntries(r.Dir)
	if err != nil {
		return 0, err
	}
	if err := sink.Title(r.Title); err != nil {
		return 0, fmt.Errorf("render title: %w", err)
	}

	n := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		path := filepath.Join(r.Dir, name)
		fi, ok := regularFileInfo(path)
		if !ok {
			continue
		}
		img, format, err := DecodeImage(path)
		if err != nil {
			return n, err
		}
		entry := Entry{Name: name, Path: path, Format: format, Size: fi.Size()}
		if err := sink.Image(img, entry, r.Insights.Lookup(name)); err != nil {
			return n, fmt.Errorf("render %s: %w", name, err)
		}
		n++
	}
	return n, nil
}
