package animalecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/animalform"
)

func TestMount(t *testing.T) {
	e := echo.New()
	reg := Mount(e, WithKey(make([]byte, 32)))

	if reg == nil {
		t.Fatal("Mount returned nil registry")
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	reg := MountGroup(e.Group(""))

	if reg == nil {
		t.Fatal("MountGroup returned nil registry")
	}
}

func TestCSRFProtection(t *testing.T) {
	e := echo.New()
	Mount(e)

	req := httptest.NewRequest(http.MethodPost, "/_c/animalcreate-00000000/create", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for POST without HX-Request, got %d", rec.Code)
	}
}

func TestGETAllowed(t *testing.T) {
	e := echo.New()
	Mount(e)

	req := httptest.NewRequest(http.MethodGet, "/_c/animalcreate-00000000/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code == http.StatusForbidden {
		t.Error("GET request should not require HX-Request header")
	}
}

func TestSubmitThroughEcho(t *testing.T) {
	e := echo.New()
	reg := Mount(e, WithKey([]byte("0123456789abcdef0123456789abcdef")))

	var created []string
	comp := animalform.New(func(name, pictureURL string) {
		created = append(created, name+"|"+pictureURL)
	})
	reg.Add(comp)

	form := url.Values{}
	form.Set("name", "Rex")
	form.Set("pictureUrl", "http://example.com/rex.png")
	req := httptest.NewRequest(http.MethodPost, comp.Prefix()+"/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	if len(created) != 1 || created[0] != "Rex|http://example.com/rex.png" {
		t.Errorf("created = %v, want one Rex", created)
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return Render(c, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>zoo</p>")
			return err
		}))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "<p>zoo</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
