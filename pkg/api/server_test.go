package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mustangtools/fuse2tone/pkg/convert"
	"github.com/mustangtools/fuse2tone/pkg/registry"
)

const testPresetXML = `<?xml version="1.0" encoding="utf-8"?>
<Preset Name="Crunchy">
  <Stomp><Module ID="60"><Param ControlIndex="0">33024</Param></Module></Stomp>
  <Modulation><Module ID="18"><Param ControlIndex="0">33024</Param></Module></Modulation>
  <Amplifier><Module ID="117"><Param ControlIndex="0">33024</Param></Module></Amplifier>
  <Delay><Module ID="22"><Param ControlIndex="0">33024</Param></Module></Delay>
  <Reverb><Module ID="10"><Param ControlIndex="0">33024</Param></Module></Reverb>
</Preset>`

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(convert.New(registry.Builtin(), convert.NewGapTable()))
}

func uploadRequest(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body = %q, want a healthy status", w.Body.String())
	}
}

func TestConvertPresetMissingUpload(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/convert/preset", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST without file = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "No file uploaded") {
		t.Errorf("body = %q, want a no-file error", w.Body.String())
	}
}

func TestExtractMissingUpload(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST without file = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "No file uploaded") {
		t.Errorf("body = %q, want a no-file error", w.Body.String())
	}
}

func TestConvertPresetUpload(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/v1/convert/preset", "crunchy.fuse", []byte(testPresetXML)))

	if w.Code != http.StatusOK {
		t.Fatalf("POST preset = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["name"] != "Crunchy" {
		t.Errorf("name = %v, want Crunchy", resp["name"])
	}
	if resp["complete"] != true {
		t.Errorf("complete = %v, want true", resp["complete"])
	}
	if _, ok := resp["preset"].(map[string]interface{}); !ok {
		t.Error("response should carry the converted preset document")
	}
}

func TestConvertPresetUploadMalformed(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/v1/convert/preset", "noise.fuse", []byte("not xml <<<")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST malformed preset = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListModules(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/modules = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Twin57") {
		t.Errorf("body = %q, want the Twin57 descriptor", w.Body.String())
	}
}
