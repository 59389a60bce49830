package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vfxspecs/exchange/internal/config"
	"github.com/vfxspecs/exchange/internal/spec"
	"github.com/vfxspecs/exchange/internal/store"
	"github.com/vfxspecs/exchange/internal/telemetry"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	log := telemetry.New(io.Discard, "exchange-test", telemetry.LevelError)
	return NewRouter(store.NewMemory(), log, config.Default())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
	return v
}

func TestHealthAndRoot(t *testing.T) {
	h := testRouter(t)
	for _, path := range []string{"/api/", "/api/health"} {
		rr := doJSON(t, h, http.MethodGet, path, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rr.Code)
		}
	}
}

func TestSpecCRUD(t *testing.T) {
	h := testRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/api/vfx-specs", map[string]any{
		"name":        "pilot",
		"projectInfo": map[string]any{"projectTitle": "Pilot"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody[spec.Spec](t, rr)
	if created.ID == "" {
		t.Fatal("no id assigned")
	}
	if len(created.CameraFormats) != 1 {
		t.Errorf("default camera format not seeded: %v", created.CameraFormats)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("request id header missing")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/vfx-specs/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get = %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPut, "/api/vfx-specs/"+created.ID, map[string]any{
		"vfxPulls": map[string]any{"showId": "PIL"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rr.Code, rr.Body.String())
	}
	updated := decodeBody[spec.Spec](t, rr)
	if updated.VFXPulls["showId"] != "PIL" {
		t.Error("update lost submitted section")
	}
	if updated.ProjectInfo["projectTitle"] != "Pilot" {
		t.Error("update clobbered omitted section")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/vfx-specs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list = %d", rr.Code)
	}
	if specs := decodeBody[[]spec.Spec](t, rr); len(specs) != 1 {
		t.Errorf("list len = %d", len(specs))
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/vfx-specs/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete = %d", rr.Code)
	}
	rr = doJSON(t, h, http.MethodGet, "/api/vfx-specs/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rr.Code)
	}
}

func TestErrorEnvelope(t *testing.T) {
	h := testRouter(t)
	rr := doJSON(t, h, http.MethodGet, "/api/vfx-specs/no-such-id", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody[map[string]map[string]string](t, rr)
	if body["error"]["code"] != "not_found" {
		t.Errorf("envelope = %v", body)
	}
}

func TestInvalidJSONRejected(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/vfx-specs", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestTemplateCRUD(t *testing.T) {
	h := testRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/api/templates", map[string]any{"data": map[string]any{}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("nameless template = %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/templates", map[string]any{
		"name": "episodic defaults",
		"data": map[string]any{"projectFormat": "Episodic"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rr.Code, rr.Body.String())
	}
	tpl := decodeBody[spec.Template](t, rr)

	rr = doJSON(t, h, http.MethodGet, "/api/templates", nil)
	if tpls := decodeBody[[]spec.Template](t, rr); len(tpls) != 1 {
		t.Errorf("list len = %d", len(tpls))
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/templates/"+tpl.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete = %d", rr.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	h := testRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/api/export/pdf", map[string]any{
		"projectInfo": map[string]any{"projectTitle": "Export Me"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("pdf export = %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Export_Me_VFX_Spec_") || !strings.HasSuffix(cd, ".pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}

	rr = doJSON(t, h, http.MethodPost, "/api/export/docx", map[string]any{})
	if rr.Code != http.StatusOK {
		t.Fatalf("docx export = %d", rr.Code)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip archive")
	}
}

func TestDropdownOptions(t *testing.T) {
	h := testRouter(t)
	rr := doJSON(t, h, http.MethodGet, "/api/dropdown-options", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	opts := decodeBody[map[string][]string](t, rr)
	for _, key := range []string{"projectFormat", "frameRate", "framePadding", "tasks"} {
		if len(opts[key]) == 0 {
			t.Errorf("catalog missing %q", key)
		}
	}
}

func TestProcessLogo(t *testing.T) {
	h := testRouter(t)

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "logo.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(pngBuf.Bytes()); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/process-logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[struct {
		DataURL string `json:"dataUrl"`
		Width   int    `json:"width"`
		Height  int    `json:"height"`
	}](t, rr)
	if resp.Height != 128 || resp.Width != 256 {
		t.Errorf("dimensions = %dx%d, want 256x128", resp.Width, resp.Height)
	}
	if !strings.HasPrefix(resp.DataURL, "data:image/png;base64,") {
		t.Error("response is not a PNG data URL")
	}
}

func TestProcessLogoRejectsGarbage(t *testing.T) {
	h := testRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "logo.png")
	part.Write([]byte("definitely not an image"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/process-logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/vfx-specs", nil)
	req.Header.Set("Origin", "https://studio.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}
