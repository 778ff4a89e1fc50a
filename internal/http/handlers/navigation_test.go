package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-navigation/internal/http/response"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"github.com/yungbote/neurobridge-navigation/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewNavigationService(logger.Nop(), services.NavigationConfig{
		SiteHomeCourseID: 1,
		WWWRoot:          "http://lms.test",
		SiteName:         "Test LMS",
	}, nil, nil, nil, nil)
	h := NewNavigationHandler(svc)

	r := gin.New()
	r.POST("/api/navigation/secondary", h.BuildSecondary)
	r.POST("/api/navigation/primary", h.BuildPrimary)
	r.GET("/api/navigation/layouts/:view/:level/:source", h.GetLayout)
	r.PUT("/api/navigation/layouts/:view/:level/:source", h.PutLayout)
	r.DELETE("/api/navigation/layouts/:view/:level/:source", h.DeleteLayout)
	r.GET("/api/navigation/extensions", h.ListExtensions)
	r.POST("/api/navigation/extensions", h.CreateExtension)
	r.GET("/api/navigation/extensions/:id", h.GetExtension)
	r.DELETE("/api/navigation/extensions/:id", h.DeleteExtension)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Error.Code
}

const courseBody = `{
  "page": {"level": "course", "course_id": 2, "url": "http://lms.test/participants"},
  "settings": {"key": "settingsnav", "type": "custom", "children": [
    {"key": "courseadmin", "type": "course", "children": [
      {"key": "editsettings", "text": "Settings", "type": "setting", "action": "http://lms.test/editsettings"}
    ]}
  ]},
  "main": {"key": "navigation", "type": "custom", "children": [
    {"key": "currentcourse", "type": "course", "children": [
      {"key": "participants", "text": "Participants", "type": "container", "action": "http://lms.test/participants"},
      {"key": "grades", "text": "Grades", "type": "setting", "action": "http://lms.test/grades"}
    ]}
  ]},
  "more_after": 3
}`

func TestBuildSecondaryHandler(t *testing.T) {
	r := newTestRouter()
	rec := do(r, http.MethodPost, "/api/navigation/secondary", courseBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var out struct {
		Navigation services.BuildResult `json:"navigation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var keys []string
	for _, c := range out.Navigation.Tree.Children {
		keys = append(keys, c.Key)
	}
	want := []string{"coursehome", "editsettings", "participants", "grades", "courseadmin"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("top level: got=%v want=%v", keys, want)
	}
	if out.Navigation.Active != "participants" {
		t.Fatalf("active: got=%q", out.Navigation.Active)
	}
	if out.Navigation.Overflow == nil || len(out.Navigation.Overflow.More) != 2 {
		t.Fatalf("overflow: %+v", out.Navigation.Overflow)
	}
}

func TestBuildSecondaryHandlerErrors(t *testing.T) {
	r := newTestRouter()

	rec := do(r, http.MethodPost, "/api/navigation/secondary", `{"page": {}}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "missing_level" {
		t.Fatalf("missing level: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/api/navigation/secondary", `{"page": `)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_request" {
		t.Fatalf("bad json: got=%d %s", rec.Code, rec.Body.String())
	}
}

func TestBuildPrimaryHandler(t *testing.T) {
	r := newTestRouter()
	body := `{"main": {"key": "navigation", "type": "custom", "children": [
		{"key": "home", "text": "Home", "type": "system", "action": "http://lms.test/"}
	]}}`
	rec := do(r, http.MethodPost, "/api/navigation/primary", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Navigation services.BuildResult `json:"navigation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Navigation.Tree.Children) != 2 || out.Navigation.Tree.Children[1].Key != "home" {
		t.Fatalf("primary tree: %+v", out.Navigation.Tree)
	}
}

func TestLayoutHandlers(t *testing.T) {
	r := newTestRouter()

	rec := do(r, http.MethodGet, "/api/navigation/layouts/secondary/module/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get layout: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Layout services.LayoutView `json:"layout"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Layout.Origin != "default" || len(out.Layout.Entries) == 0 {
		t.Fatalf("layout: %+v", out.Layout)
	}

	rec = do(r, http.MethodGet, "/api/navigation/layouts/secondary/user/settings", "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_layout_key" {
		t.Fatalf("unknown layout: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPut, "/api/navigation/layouts/primary/system/navigation", `{"entries": [{"type": "bogus", "key": "home", "position": 1}]}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_layout" {
		t.Fatalf("bad entries: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodDelete, "/api/navigation/layouts/primary/system/navigation", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete without storage: got=%d %s", rec.Code, rec.Body.String())
	}
}

func TestExtensionHandlers(t *testing.T) {
	r := newTestRouter()

	rec := do(r, http.MethodGet, "/api/navigation/extensions?level=course&instance_id=abc", "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_instance_id" {
		t.Fatalf("bad instance id: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodGet, "/api/navigation/extensions?level=course&instance_id=4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/api/navigation/extensions", `{"context_level": "category", "node_key": "x", "text": "X"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_extension" {
		t.Fatalf("bad extension: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodDelete, "/api/navigation/extensions/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_extension_id" {
		t.Fatalf("bad id: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodGet, "/api/navigation/extensions/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "extension_not_found" {
		t.Fatalf("get missing extension: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/api/navigation/extensions", `{"context_level": "course", "node_key": "badges", "text": "Badges"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_extension" {
		t.Fatalf("course extension without parent: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodDelete, "/api/navigation/extensions/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "extension_not_found" {
		t.Fatalf("missing extension: got=%d %s", rec.Code, rec.Body.String())
	}
}
