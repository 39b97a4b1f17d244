package prefabs

import (
	"errors"
	"testing"
)

func TestLoadEmbeddedDemoScene(t *testing.T) {
	scene, err := LoadScene("demo")
	if err != nil {
		t.Fatalf("load demo scene: %v", err)
	}
	if scene.Name != "demo" || len(scene.Objects) == 0 {
		t.Fatalf("unexpected scene %+v", scene)
	}
	for _, o := range scene.Objects {
		if o.Script == "" {
			continue
		}
		if _, err := LoadScript(o.Script); err != nil {
			t.Fatalf("object %s references missing script %s: %v", o.Name, o.Script, err)
		}
	}
}

func TestParseSceneValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: `
bounds: {width: 100, height: 100}
objects:
  - name: a
    shape: {kind: circle, radius: 2}
    collider: circle
    body: {mass: 1}
`,
		},
		{
			name:    "missing_bounds",
			yaml:    `objects: []`,
			wantErr: true,
		},
		{
			name: "bad_mode",
			yaml: `
bounds: {width: 10, height: 10}
mode: exact
`,
			wantErr: true,
		},
		{
			name: "bad_shape",
			yaml: `
bounds: {width: 10, height: 10}
objects:
  - name: a
    shape: {kind: box, half_width: 0, half_height: 1}
`,
			wantErr: true,
		},
		{
			name: "massless_dynamic_body",
			yaml: `
bounds: {width: 10, height: 10}
objects:
  - name: a
    shape: {kind: circle, radius: 1}
    body: {mass: 0}
`,
			wantErr: true,
		},
		{
			name: "static_body_without_mass",
			yaml: `
bounds: {width: 10, height: 10}
objects:
  - name: a
    shape: {kind: box, half_width: 1, half_height: 1}
    body: {static: true}
`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseScene([]byte(c.yaml))
			if c.wantErr {
				if !errors.Is(err, ErrInvalidScene) {
					t.Fatalf("expected ErrInvalidScene, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{scenePath, "demo", "scenes/demo.yaml"},
		{scenePath, "scenes/demo.yaml", "scenes/demo.yaml"},
		{scenePath, "prefabs/scenes/demo.yml", "scenes/demo.yml"},
		{cleanScriptPath, "stop_on_first.tengo", "scripts/stop_on_first.tengo"},
		{cleanScriptPath, "prefabs/scripts/stop_on_first.tengo", "scripts/stop_on_first.tengo"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("path(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	if k, ok := classify("prefabs/scenes/demo.YAML"); !ok || k != SceneChanged {
		t.Fatalf("yaml should be a scene change")
	}
	if k, ok := classify("x.tengo"); !ok || k != ScriptChanged {
		t.Fatalf("tengo should be a script change")
	}
	if _, ok := classify("notes.txt"); ok {
		t.Fatalf("txt should be ignored")
	}
}
