package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/spa-dev/rbgen/pkg/buildinfo"
	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
	rbio "github.com/spa-dev/rbgen/pkg/io"
	"github.com/spa-dev/rbgen/pkg/pipeline"
)

// Response headers of a rendered background.
const (
	HeaderMode   = "X-Rbgen-Mode"
	HeaderColors = "X-Rbgen-Colors"
	HeaderCache  = "X-Cache"
)

// reserved lists the query keys that are not mode parameters.
var reserved = map[string]bool{
	"mode":    true,
	"theme":   true,
	"colors":  true,
	"seed":    true,
	"random":  true,
	"refresh": true,
}

type modeInfo struct {
	Name        catalog.Mode   `json:"name"`
	Description string         `json:"description"`
	MinColors   int            `json:"min_colors"`
	Defaults    catalog.Params `json:"defaults"`
}

type themeInfo struct {
	Name  string     `json:"name"`
	Pairs [][]string `json:"pairs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	var out []modeInfo
	for _, m := range catalog.Modes() {
		out = append(out, modeInfo{
			Name:        m,
			Description: m.Description(),
			MinColors:   m.MinColors(),
			Defaults:    catalog.DefaultParams(m),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes := s.runner.Themes
	var out []themeInfo
	for _, name := range themes.Names() {
		pairs, _ := themes.Pairs(name)
		info := themeInfo{Name: name}
		for _, p := range pairs {
			info.Pairs = append(info.Pairs, []string{p[0].String(), p[1].String()})
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	fg, err := rbio.ReadImage(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err = errors.New(errors.ErrCodeResourceBound, "request body exceeds %d bytes", s.cfg.MaxBodyBytes)
		}
		writeError(w, r, err)
		return
	}

	opts.Logger = s.logger.With("id", RequestID(r.Context()))
	res, err := s.runner.Execute(r.Context(), fg, opts)
	if err != nil {
		if !errors.IsRequestError(err) {
			s.logger.Error("render failed", "id", RequestID(r.Context()), "err", err)
		}
		writeError(w, r, err)
		return
	}

	colors := make([]string, len(res.Colors))
	for i, c := range res.Colors {
		colors[i] = c.String()
	}
	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Length", strconv.Itoa(len(res.PNG)))
	h.Set(HeaderMode, string(res.Mode))
	h.Set(HeaderColors, strings.Join(colors, ","))
	if res.Cached {
		h.Set(HeaderCache, "HIT")
	} else {
		h.Set(HeaderCache, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}

// optionsFromQuery builds pipeline options from a query string. Keys that
// are not reserved become mode parameters.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Mode:  catalog.Mode(q.Get("mode")),
		Theme: q.Get("theme"),
	}
	if v := q.Get("colors"); v != "" {
		colors, err := colorspace.ParseList(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidColor, err, "colors")
		}
		opts.Colors = colors
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidParameter, err, "seed must be a non-negative integer")
		}
		opts.Seed = &seed
	}
	var err error
	if opts.Random, err = queryBool(q, "random"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = queryBool(q, "refresh"); err != nil {
		return opts, err
	}
	opts.ParamsText = paramsText(q)
	return opts, nil
}

func queryBool(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidParameter, err, "%s must be a boolean", key)
	}
	return b, nil
}

// paramsText renders the non-reserved query keys as TOML. A value that is
// not a TOML literal on its own (such as radial) is quoted as a string.
func paramsText(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", strconv.Quote(k), tomlValue(q.Get(k)))
	}
	return b.String()
}

func tomlValue(v string) string {
	var probe map[string]any
	if _, err := toml.Decode("v = "+v, &probe); err == nil && !strings.ContainsAny(v, "\n\r") {
		return v
	}
	return strconv.Quote(v)
}
