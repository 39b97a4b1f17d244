package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/colliders/collision"
	"github.com/milk9111/colliders/ecs/entity"
	"github.com/milk9111/colliders/prefabs"
)

// collideDispatchScript is appended to every collide script. Scripts define
// on_collide(contact) and return "stop" or "continue".
const collideDispatchScript = `
if __phase == "collide" {
	__verdict = on_collide(__contact)
}
`

// ScriptRuntime compiles collide scripts once per path and hands out handlers
// backed by private clones, so script globals are per object.
type ScriptRuntime struct {
	load     func(path string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

func NewScriptRuntime() *ScriptRuntime {
	return &ScriptRuntime{
		load:     prefabs.LoadScript,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// NewScriptRuntimeFrom compiles scripts returned by load instead of prefabs.
func NewScriptRuntimeFrom(load func(path string) ([]byte, error)) *ScriptRuntime {
	rt := NewScriptRuntime()
	if load != nil {
		rt.load = load
	}
	return rt
}

// Forget drops the compiled copy of path so the next Handler call recompiles it.
func (rt *ScriptRuntime) Forget(path string) {
	if rt == nil {
		return
	}
	delete(rt.compiled, path)
}

// Reset drops every compiled script.
func (rt *ScriptRuntime) Reset() {
	if rt == nil {
		return
	}
	clear(rt.compiled)
}

// Handler returns a collide handler running the script at path. Script
// errors are logged and treated as Continue.
func (rt *ScriptRuntime) Handler(path string) (entity.CollideHandler, error) {
	if rt == nil {
		return nil, fmt.Errorf("nil script runtime")
	}
	base, err := rt.compile(path)
	if err != nil {
		return nil, err
	}
	compiled := base.Clone()
	return func(o *entity.Object, c collision.Contact) collision.Verdict {
		verdict, err := runCollide(compiled, o, c)
		if err != nil {
			log.Printf("ScriptRuntime: %s on_collide for %s: %v", path, o, err)
			return collision.Continue
		}
		return verdict
	}, nil
}

func (rt *ScriptRuntime) compile(path string) (*tengo.Compiled, error) {
	if c, ok := rt.compiled[path]; ok {
		return c, nil
	}
	src, err := rt.load(path)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + collideDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__contact", map[string]any{})
	_ = script.Add("__verdict", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", path, err)
	}
	// run the top level once so on_collide gets defined
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("run script %s: %w", path, err)
	}
	if !compiled.IsDefined("on_collide") {
		return nil, fmt.Errorf("script %s: on_collide is not defined", path)
	}
	rt.compiled[path] = compiled
	return compiled, nil
}

func runCollide(compiled *tengo.Compiled, o *entity.Object, c collision.Contact) (collision.Verdict, error) {
	if err := compiled.Set("__phase", "collide"); err != nil {
		return collision.Continue, err
	}
	if err := compiled.Set("__contact", contactMap(o, c)); err != nil {
		return collision.Continue, err
	}
	if err := compiled.Set("__verdict", ""); err != nil {
		return collision.Continue, err
	}
	if err := compiled.Run(); err != nil {
		return collision.Continue, err
	}
	return parseVerdict(compiled.Get("__verdict").String())
}

func contactMap(o *entity.Object, c collision.Contact) map[string]any {
	m := map[string]any{
		"self":        o.Name(),
		"time":        c.At.Seconds(),
		"host_mask":   int64(c.HostMask),
		"target_mask": int64(c.TargetMask),
		"detailed":    c.Data != nil,
		"distance":    0.0,
	}
	if c.Candidate != nil {
		m["other"] = c.Candidate.String()
	}
	if c.Data != nil {
		m["distance"] = c.Data.Distance
		m["normal_x"] = c.Data.Normal.X
		m["normal_y"] = c.Data.Normal.Y
		m["separation_x"] = c.Data.Separation.X
		m["separation_y"] = c.Data.Separation.Y
	}
	return m
}

func parseVerdict(s string) (collision.Verdict, error) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(s), "\"")) {
	case "", "continue":
		return collision.Continue, nil
	case "stop":
		return collision.Stop, nil
	default:
		return collision.Continue, fmt.Errorf("on_collide returned %q, want \"stop\" or \"continue\"", s)
	}
}
