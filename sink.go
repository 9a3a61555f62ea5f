package vizboard

import (
	"image"

	"github.com/dustin/go-humanize"

	"github.com/eringen/vizboard/views"
)

// SourceFunc returns the src attribute for an image block.
type SourceFunc func(img image.Image, e Entry) (string, error)

// URLSource points each block at the server's image endpoint.
func URLSource(_ image.Image, e Entry) (string, error) {
	return ImageURL(e.Name), nil
}

// InlineSource embeds each block as a data: URI, downscaled to maxWidth,
// so the rendered page has no external references.
func InlineSource(maxWidth int) SourceFunc {
	return func(img image.Image, e Entry) (string, error) {
		return DataURI(img, e.Format, maxWidth)
	}
}

// PageSink collects a render pass into a views.Page.
type PageSink struct {
	Page   views.Page
	Source SourceFunc
}

// NewPageSink returns a PageSink that resolves image sources with src.
func NewPageSink(dir string, src SourceFunc) *PageSink {
	return &PageSink{Page: views.Page{Dir: dir}, Source: src}
}

// Title implements Sink.
func (s *PageSink) Title(title string) error {
	s.Page.Title = title
	return nil
}

// Image implements Sink.
func (s *PageSink) Image(img image.Image, e Entry, caption string) error {
	src, err := s.Source(img, e)
	if err != nil {
		return err
	}
	b := img.Bounds()
	s.Page.Blocks = append(s.Page.Blocks, views.Block{
		Filename: e.Name,
		Caption:  caption,
		Src:      src,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Size:     humanize.Bytes(uint64(e.Size)),
	})
	return nil
}
