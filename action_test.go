package animalform

import "testing"

func TestActionSpecDefaults(t *testing.T) {
	attrs := actionSpec{path: "/url"}.attrs()

	if attrs["hx-post"] != "/url" {
		t.Errorf("hx-post = %v, want /url", attrs["hx-post"])
	}
	if attrs["hx-swap"] != "outerHTML" {
		t.Errorf("hx-swap = %v, want outerHTML", attrs["hx-swap"])
	}
	for _, k := range []string{"hx-target", "hx-trigger", "hx-sync"} {
		if _, ok := attrs[k]; ok {
			t.Errorf("%s set without a value", k)
		}
	}
}

func TestActionSpecOptional(t *testing.T) {
	attrs := actionSpec{
		path:    "/_c/form/input",
		target:  "closest form",
		swap:    SwapNone,
		trigger: "input changed",
		sync:    "closest form:queue last",
	}.attrs()

	want := map[string]string{
		"hx-post":    "/_c/form/input",
		"hx-target":  "closest form",
		"hx-swap":    "none",
		"hx-trigger": "input changed",
		"hx-sync":    "closest form:queue last",
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("%s = %v, want %q", k, attrs[k], v)
		}
	}
}
