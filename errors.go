package vizboard

import "fmt"

// DirectoryAccessError is returned when the image directory is missing or
// cannot be read. It aborts the render pass before anything is emitted.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("read image directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// ImageDecodeError is returned when a listed regular file cannot be decoded
// as an image. It aborts the render pass.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("decode image %q: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }
