package vizboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/vizboard/views"
)

// ViewFuncs holds the components the dashboard renders. New fills unset
// fields with the views package defaults, so callers can replace any subset.
type ViewFuncs struct {
	Dashboard   func(p views.Page) templ.Component
	AdminLogin  func(showError bool, csrfToken string) templ.Component
	History     func(rows []views.PassRow, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func(msg string) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Dashboard == nil {
		v.Dashboard = views.Dashboard
	}
	if v.AdminLogin == nil {
		v.AdminLogin = views.AdminLogin
	}
	if v.History == nil {
		v.History = views.History
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the dashboard server. It wires together the renderer, the history
// store, the handlers, and the middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Store    *Store
	Insights Insights
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	staticDir    string
	insightsSet  bool
	ownsStore    bool
	initialized  bool
}

// New creates an App with the given configuration and options.
func New(cfg Config, vf ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	vf.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     vf,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init loads the insights, opens the history store, and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Init() error {
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("vizboard: SessionSecret is required when AdminPassword is set")
	}

	if !a.insightsSet {
		if a.Config.InsightsPath != "" {
			in, err := LoadInsightsFile(a.Config.InsightsPath)
			if err != nil {
				return fmt.Errorf("vizboard: %w", err)
			}
			a.Insights = in
		} else {
			a.Insights = DefaultInsights()
		}
		a.insightsSet = true
	}

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("vizboard: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}
	if n, err := a.Store.PruneBefore(time.Now().Add(-a.Config.HistoryRetention)); err != nil {
		a.Echo.Logger.Warnf("prune render history: %v", err)
	} else if n > 0 {
		a.Echo.Logger.Infof("pruned %d render passes", n)
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	a.initialized = true
	return nil
}

// Start initializes the app and serves until the server is closed.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	return a.Serve()
}

// Serve listens on the configured address until the server is closed.
// Init must have succeeded first.
func (a *App) Serve() error {
	if !a.initialized {
		return errors.New("vizboard: Serve called before Init")
	}
	a.Echo.Logger.Infof("serving %s on %s", a.Config.ImageDir, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleDashboard)
	e.GET("/image/", a.handleImage)

	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
	}
}

// Renderer returns a Renderer over the configured directory and insights.
func (a *App) Renderer() *Renderer {
	return &Renderer{
		Dir:      a.Config.ImageDir,
		Title:    a.Config.Title,
		Insights: a.Insights,
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil && a.ownsStore {
		return a.Store.Close()
	}
	return nil
}
