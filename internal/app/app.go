// Package app wires the form session, config persistence and the overlay
// compositor into the interactive Berichtsheft generator.
package app

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"berichtsheft/internal/config"
	"berichtsheft/internal/form"
	"berichtsheft/internal/overlay"
	"berichtsheft/internal/prompt"
)

// App owns the session of one user and everything needed to render it.
type App struct {
	session      *form.Session
	store        config.Store
	compositor   *overlay.Compositor
	driver       prompt.Driver
	logger       *log.Logger
	templatePath string
	base         overlay.Request
	now          func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithDriver overrides the prompt driver used by Run.
func WithDriver(driver prompt.Driver) Option {
	return func(a *App) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithCompositor overrides the compositor used for generation.
func WithCompositor(c *overlay.Compositor) Option {
	return func(a *App) {
		if c != nil {
			a.compositor = c
		}
	}
}

// WithLogger routes status messages to logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRequest overrides font, spacing and page size of generated reports.
func WithRequest(base overlay.Request) Option {
	return func(a *App) {
		a.base = base
	}
}

// WithClock overrides the time source used for week navigation.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an App rendering onto the template at templatePath and
// persisting values in store.
func New(templatePath string, store config.Store, opts ...Option) *App {
	a := &App{
		session:      form.NewSession(),
		store:        store,
		templatePath: templatePath,
		base:         overlay.DefaultRequest(),
		logger:       log.New(io.Discard, "", 0),
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.compositor == nil {
		a.compositor = overlay.New(overlay.WithLogger(a.logger))
	}
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver()
	}
	return a
}

// Session returns the live session.
func (a *App) Session() *form.Session {
	return a.session
}

// Start loads the saved values. When nothing could be loaded the session
// falls back to first-run defaults; Start reports whether a config was used.
func (a *App) Start() bool {
	values, err := a.store.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			a.logger.Printf("no configuration file found, using defaults")
		} else {
			a.logger.Printf("error loading configuration: %v", err)
		}
		a.session.ApplyDefaults()
		return false
	}
	a.session.Apply(values)
	a.logger.Printf("configuration loaded from %s", a.store.Path)
	return true
}

// Save persists the current values.
func (a *App) Save() error {
	if err := a.store.Save(a.session.Values()); err != nil {
		a.logger.Printf("error saving configuration: %v", err)
		return err
	}
	a.logger.Printf("configuration saved to %s", a.store.Path)
	return nil
}

// Generate renders the current session and returns the path of the written
// report. The config is saved after a successful run; failing to save is
// logged only.
func (a *App) Generate() (string, error) {
	if err := a.session.Prepare(); err != nil {
		return "", err
	}

	// A blank directory means the working directory.
	dir := strings.TrimSpace(a.session.Get(form.OutputDirectory))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &overlay.OutputWriteError{Path: dir, Err: err}
	}
	outputPath := filepath.Join(dir, a.session.OutputFilename())

	if err := a.compositor.Generate(a.templatePath, outputPath, a.session.Request(a.base)); err != nil {
		return "", err
	}
	_ = a.Save()
	return outputPath, nil
}

// Calibrate writes a copy of the template with every field name printed at
// its position.
func (a *App) Calibrate(outputPath string) error {
	return a.compositor.Calibrate(a.templatePath, outputPath, form.Positions(a.base.PageSize))
}
