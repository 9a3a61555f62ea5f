package vizboard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	defaultMaxImageWidth = 1200
	jpegQuality          = 80
)

// Downscale resizes img to maxWidth, preserving aspect ratio, if it is wider.
// A maxWidth <= 0 disables scaling.
func Downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth <= 0 || w <= maxWidth {
		return img
	}
	newH := h * maxWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Encode writes img as JPEG when the source format was JPEG and as PNG
// otherwise. It returns the encoded bytes and their MIME type.
func Encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

// DataURI downscales and encodes img as a base64 data: URI.
func DataURI(img image.Image, format string, maxWidth int) (string, error) {
	data, mime, err := Encode(Downscale(img, maxWidth), format)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ImageURL returns the dashboard URL that serves the named image.
func ImageURL(name string) string {
	return "/image/?f=" + url.QueryEscape(name)
}

// safeName reports whether name is a plain file name with no path components.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

func (a *App) handleImage(c echo.Context) error {
	name := c.QueryParam("f")
	if !safeName(name) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	path := filepath.Join(a.Config.ImageDir, name)
	if !IsRegularFile(path) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	img, format, err := DecodeImage(path)
	if err != nil {
		c.Logger().Warnf("serve image: %v", err)
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "not a supported image")
	}
	data, mime, err := Encode(Downscale(img, a.Config.MaxImageWidth), format)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mime, data)
}
