package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/cache"
	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/errors"
	"github.com/spa-dev/rbgen/pkg/pipeline"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	store, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(store, nil, logger)
	srv := httptest.NewServer(New(runner, logger, cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func pngBody(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{9, 9, 9, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDPropagates(t *testing.T) {
	srv := newTestServer(t, Config{})
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestModes(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/v1/modes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var modes []struct {
		Name      string         `json:"name"`
		MinColors int            `json:"min_colors"`
		Defaults  map[string]any `json:"defaults"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&modes))
	require.Len(t, modes, 16)
	assert.Equal(t, "solid", modes[0].Name)
	assert.Equal(t, 1, modes[0].MinColors)
	assert.Equal(t, "checkered", modes[2].Name)
	assert.EqualValues(t, 20, modes[2].Defaults["square_size"])
}

func TestThemes(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/v1/themes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var themes []themeInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&themes))
	require.Len(t, themes, 5)
	assert.Equal(t, "autumn", themes[0].Name)
	assert.Equal(t, []string{"#964b32", "#e6823c"}, themes[0].Pairs[0])
}

func TestBackground(t *testing.T) {
	srv := newTestServer(t, Config{})
	target := srv.URL + "/v1/backgrounds?mode=gradient&direction=radial&colors=%23000000,%23ffffff&seed=5"

	resp, err := http.Post(target, "image/png", bytes.NewReader(pngBody(t, 30, 20)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "gradient", resp.Header.Get(HeaderMode))
	assert.Equal(t, "#000000,#ffffff", resp.Header.Get(HeaderColors))
	assert.Equal(t, "MISS", resp.Header.Get(HeaderCache))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
	assert.Equal(t, color.NRGBA{9, 9, 9, 255}, color.NRGBAModel.Convert(img.At(0, 0)))

	again, err := http.Post(target, "image/png", bytes.NewReader(pngBody(t, 30, 20)))
	require.NoError(t, err)
	again.Body.Close()
	assert.Equal(t, "HIT", again.Header.Get(HeaderCache))
}

func TestBackgroundErrors(t *testing.T) {
	srv := newTestServer(t, Config{MaxBodyBytes: 4096})
	valid := pngBody(t, 8, 8)

	tests := []struct {
		name   string
		query  string
		body   []byte
		status int
		code   errors.Code
	}{
		{"unknown mode", "mode=plasma", valid, http.StatusBadRequest, errors.ErrCodeInvalidMode},
		{"unknown theme", "mode=cloud&theme=neon", valid, http.StatusBadRequest, errors.ErrCodeInvalidTheme},
		{"bad color", "mode=solid&colors=nothex", valid, http.StatusBadRequest, errors.ErrCodeInvalidColor},
		{"bad seed", "seed=-1", valid, http.StatusBadRequest, errors.ErrCodeInvalidParameter},
		{"unknown param", "mode=solid&num_rays=3", valid, http.StatusBadRequest, errors.ErrCodeInvalidParameter},
		{"bad param", "mode=checkered&square_size=0", valid, http.StatusBadRequest, errors.ErrCodeInvalidParameter},
		{"not an image", "mode=solid", []byte("hello"), http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", "mode=solid", make([]byte, 8192), http.StatusRequestEntityTooLarge, errors.ErrCodeResourceBound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/backgrounds?"+tt.query, "image/png", bytes.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code, body.Error.Message)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, err := http.Get(srv.URL + "/v2/nothing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, resp).Error.Code)
}

func TestParamsText(t *testing.T) {
	q := url.Values{
		"mode":       {"waves"},
		"seed":       {"1"},
		"direction":  {"vertical"},
		"num_waves":  {"4"},
		"wave_types": {`["sine"]`},
	}
	assert.Equal(t, "\"direction\" = \"vertical\"\n\"num_waves\" = 4\n\"wave_types\" = [\"sine\"]\n", paramsText(q))

	p, err := catalog.DecodeParams(catalog.ModeWaves, paramsText(q))
	require.NoError(t, err)
	assert.Equal(t, 4, p.(*catalog.WavesParams).NumWaves)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeInvalidMode))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(errors.ErrCodeResourceBound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}
