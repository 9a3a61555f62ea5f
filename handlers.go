package vizboard

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// handleDashboard runs one render pass per request. The page is only written
// once the pass has completed, so an aborted pass never yields partial output.
func (a *App) handleDashboard(c echo.Context) error {
	sink := NewPageSink(a.Config.ImageDir, URLSource)
	if _, err := RunPass(c.Request().Context(), a.Renderer(), sink, a.Store, c.Logger()); err != nil {
		return err
	}
	return Render(c, a.Views.Dashboard(sink.Page))
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var dirErr *DirectoryAccessError
	var decodeErr *ImageDecodeError
	switch {
	case errors.As(err, &dirErr):
		c.Logger().Errorf("render pass: %v", err)
		_ = RenderStatus(c, http.StatusInternalServerError, a.Views.ServerError("The image directory could not be read."))
		return
	case errors.As(err, &decodeErr):
		c.Logger().Errorf("render pass: %v", err)
		_ = RenderStatus(c, http.StatusInternalServerError, a.Views.ServerError(filepath.Base(decodeErr.Path)+" is not a valid image."))
		return
	}

	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(""))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
