// internal/api/themes/handlers.go
package themes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themevars/internal/api/apiutil"
	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/css"
	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/models"
	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
	themetempl "github.com/codr1/themevars/internal/templates/components/themes"
)

const (
	themeQueryTimeout = 5 * time.Second
	maxThemeBodyBytes = 256 << 10
	themeNameParam    = "name"
	themeFileParam    = "file"
	cssSuffix         = ".css"
	htmlSuffix        = ".html"
)

var (
	queries     models.ThemeQueries
	defaults    preset.Options
	queriesOnce sync.Once
)

var (
	prefixRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// Selectors end up inside a rule and inside the preview's <style> element.
	unsafeSelectorChars = "{};<>"
)

// ThemeResponse is the JSON body for a single built theme.
type ThemeResponse struct {
	Name     string        `json:"name"`
	IsSystem bool          `json:"isSystem"`
	Preset   preset.Preset `json:"preset"`
	Warnings []string      `json:"warnings"`
}

type themeListResponse struct {
	Themes []themeSummary `json:"themes"`
}

type themeSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsSystem  bool      `json:"isSystem"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InitHandlers must be called during server startup before handling requests.
// opts are the configured build options; query parameters override them per
// request.
func InitHandlers(q models.ThemeQueries, opts preset.Options) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
		defaults = opts
	})
}

// RegisterRoutes adds the theme API and stylesheet routes to mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/themes", HandleThemesList)
	mux.HandleFunc("GET /api/v1/themes/{name}", HandleThemeDetail)
	mux.HandleFunc("PUT /api/v1/themes/{name}", HandleThemePut)
	mux.HandleFunc("DELETE /api/v1/themes/{name}", HandleThemeDelete)
	mux.HandleFunc("GET /themes/{file}", HandleThemeFile)
}

// GET /api/v1/themes
func HandleThemesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	rows, err := q.ListThemes(ctx)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list themes",
			Err:     err,
		})
		return
	}

	resp := themeListResponse{Themes: make([]themeSummary, 0, len(rows))}
	for _, row := range rows {
		resp.Themes = append(resp.Themes, themeSummary{
			ID:        row.ID,
			Name:      row.Name,
			IsSystem:  row.IsSystem,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write themes response")
	}
}

// GET /api/v1/themes/{name}
func HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue(themeNameParam)

	built, err := buildStoredTheme(r, name)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	resp := ThemeResponse{
		Name:     built.record.Name,
		IsSystem: built.record.IsSystem,
		Preset:   built.result.Preset(),
		Warnings: built.result.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme", name).Msg("Failed to write theme response")
	}
}

// PUT /api/v1/themes/{name}
//
// The body is the theme document itself, YAML or JSON.
func HandleThemePut(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	name := r.PathValue(themeNameParam)
	if err := models.ValidateThemeName(name); err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}

	source, err := readThemeBody(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	theme := models.Theme{Name: name, Source: source}
	if err := theme.Validate(); err != nil {
		logger.Debug().Err(err).Str("theme", name).Msg("Rejected theme document")
		apiutil.WriteError(w, r, badRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	existing, err := models.GetTheme(ctx, q, name)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load theme",
			Err:     err,
		})
		return
	}
	if existing != nil && existing.IsSystem {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusForbidden,
			Message: "System themes cannot be modified",
		})
		return
	}

	saved, err := q.UpsertTheme(ctx, models.UpsertThemeParams{
		Name:   name,
		Source: source,
	})
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save theme",
			Err:     err,
		})
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	logger.Info().Str("theme", name).Int("status", status).Msg("Theme saved")

	if err := apiutil.WriteJSON(w, status, saved); err != nil {
		logger.Error().Err(err).Str("theme", name).Msg("Failed to write theme response")
	}
}

// DELETE /api/v1/themes/{name}
func HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	name := r.PathValue(themeNameParam)

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	existing, err := models.GetTheme(ctx, q, name)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load theme",
			Err:     err,
		})
		return
	}
	if existing == nil {
		apiutil.WriteError(w, r, notFound())
		return
	}
	if existing.IsSystem {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusForbidden,
			Message: "System themes cannot be deleted",
		})
		return
	}

	deleted, err := q.DeleteTheme(ctx, name)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete theme",
			Err:     err,
		})
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, r, notFound())
		return
	}

	logger.Info().Str("theme", name).Msg("Theme deleted")
	w.WriteHeader(http.StatusNoContent)
}

// GET /themes/{file}
//
// {name}.css serves the stylesheet; {name} or {name}.html serves the preview.
func HandleThemeFile(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue(themeFileParam)

	if name, ok := strings.CutSuffix(file, cssSuffix); ok {
		built, err := buildStoredTheme(r, name)
		if err != nil {
			apiutil.WriteError(w, r, err)
			return
		}

		layer := strings.TrimSpace(r.URL.Query().Get("layer"))
		if layer != "" && !prefixRegex.MatchString(layer) {
			apiutil.WriteError(w, r, badRequest(fmt.Errorf("layer must contain only letters, digits, hyphens, and underscores")))
			return
		}

		var sb strings.Builder
		if err := css.Render(&sb, built.result.BaseStyles, css.Options{Layer: layer}); err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		io.WriteString(w, sb.String())
		return
	}

	name := strings.TrimSuffix(file, htmlSuffix)
	built, err := buildStoredTheme(r, name)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	data, err := themetempl.NewPreviewData(built.record.Name, built.theme, built.result)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, themetempl.ThemePreview(data), "Failed to render theme preview", "Failed to render preview")
}

type builtTheme struct {
	record models.Theme
	theme  palette.Theme
	result *preset.Result
}

// buildStoredTheme loads name and builds it with the request's options.
// Failures are returned as apiutil.HandlerError.
func buildStoredTheme(r *http.Request, name string) (builtTheme, error) {
	q := loadQueries()
	if q == nil {
		return builtTheme{}, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Internal Server Error",
			Err:     errors.New("database queries not initialized"),
		}
	}
	if err := models.ValidateThemeName(name); err != nil {
		return builtTheme{}, notFound()
	}

	opts, err := presetOptions(r)
	if err != nil {
		return builtTheme{}, badRequest(err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	record, err := models.GetTheme(ctx, q, name)
	if err != nil {
		return builtTheme{}, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load theme",
			Err:     err,
		}
	}
	if record == nil {
		return builtTheme{}, notFound()
	}

	doc, err := record.Document()
	if err != nil {
		return builtTheme{}, apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Stored theme is invalid",
			Err:     err,
		}
	}

	builder := preset.NewBuilder(log.Ctx(r.Context()).With().Str("theme", name).Logger())
	result, err := builder.Build(doc, opts)
	if err != nil {
		return builtTheme{}, buildError(err)
	}

	return builtTheme{record: *record, theme: doc, result: result}, nil
}

// presetOptions applies the format, prefix, darkMode, darkSelector and strict
// query parameters over the configured defaults.
func presetOptions(r *http.Request) (preset.Options, error) {
	opts := loadDefaults()
	query := r.URL.Query()

	if query.Has("format") {
		format, err := colors.ParseFormat(strings.TrimSpace(query.Get("format")))
		if err != nil {
			return preset.Options{}, err
		}
		opts.ColorFormat = format
	}

	if query.Has("prefix") {
		prefix := strings.TrimSpace(query.Get("prefix"))
		if !prefixRegex.MatchString(prefix) {
			return preset.Options{}, fmt.Errorf("prefix must contain only letters, digits, hyphens, and underscores")
		}
		opts.Prefix = prefix
	}

	if query.Has("darkMode") {
		strategy, err := darkmode.ParseStrategy(query.Get("darkMode"))
		if err != nil {
			return preset.Options{}, err
		}
		opts.DarkMode = strategy
	}

	if selectors := apiutil.QueryValues(r, "darkSelector"); len(selectors) > 0 {
		for _, selector := range selectors {
			if strings.ContainsAny(selector, unsafeSelectorChars) {
				return preset.Options{}, fmt.Errorf("darkSelector %q contains invalid characters", selector)
			}
		}
		opts.DarkSelectors = selectors
	}

	if query.Has("strict") {
		strict, err := apiutil.ParseBool(query.Get("strict"))
		if err != nil {
			return preset.Options{}, fmt.Errorf("strict must be a boolean")
		}
		opts.Strict = strict
	}

	return opts, nil
}

func readThemeBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", badRequest(errors.New("missing request body"))
	}
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxThemeBodyBytes+1))
	if err != nil {
		return "", badRequest(fmt.Errorf("read body: %w", err))
	}
	if len(data) > maxThemeBodyBytes {
		return "", apiutil.HandlerError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: "Theme document too large",
		}
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", badRequest(errors.New("missing request body"))
	}
	return string(data), nil
}

func buildError(err error) error {
	switch {
	case errors.Is(err, colors.ErrInvalidColor),
		errors.Is(err, colors.ErrInvalidFormat),
		errors.Is(err, palette.ErrAmbiguousTheme),
		errors.Is(err, palette.ErrEmptyTheme),
		errors.Is(err, preset.ErrDarkVariablesDropped):
		return badRequest(err)
	default:
		return apiutil.HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build theme",
			Err:     err,
		}
	}
}

func badRequest(err error) apiutil.HandlerError {
	return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
}

func notFound() apiutil.HandlerError {
	return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Theme not found"}
}

func loadQueries() models.ThemeQueries {
	return queries
}

func loadDefaults() preset.Options {
	opts := defaults
	opts.DarkSelectors = append([]string(nil), defaults.DarkSelectors...)
	return opts
}
