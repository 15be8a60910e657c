package level

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const scriptTimeout = 250 * time.Millisecond

// Script is a tengo layout source. The script must assign `pits` and
// `terraces`, each an array of five maps:
//
//	pits     = [{x: 0, y: 10, half_width: 2, depth: 3}, ...]
//	terraces = [{x: 0, y: 0, half_width: 2, angle: 0.1}, ...]
//
// A `uniform(lo, hi)` builtin draws from the level's random stream and the
// `math` module is importable. Out-of-range values are clamped.
type Script struct {
	Name string
	src  []byte
}

func NewScript(name string, src []byte) *Script {
	return &Script{Name: name, src: src}
}

func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load script %s: %w", path, err)
	}
	return NewScript(path, src), nil
}

func (s *Script) Layout(ctx context.Context, rng *rand.Rand) (Layout, error) {
	script := tengo.NewScript(s.src)
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("uniform", uniformFunc(rng)); err != nil {
		return Layout{}, fmt.Errorf("level: script %s: %w", s.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	compiled, err := script.RunContext(ctx)
	if err != nil {
		return Layout{}, fmt.Errorf("level: script %s: %w", s.Name, err)
	}

	pits, err := readFeatures(compiled, "pits", "x", "y", "half_width", "depth")
	if err != nil {
		return Layout{}, fmt.Errorf("level: script %s: %w", s.Name, err)
	}
	terraces, err := readFeatures(compiled, "terraces", "x", "y", "half_width", "angle")
	if err != nil {
		return Layout{}, fmt.Errorf("level: script %s: %w", s.Name, err)
	}

	var l Layout
	for _, v := range pits {
		l.Pits = append(l.Pits, Pit{X: v[0], Y: v[1], HalfWidth: v[2], Depth: v[3]})
	}
	for _, v := range terraces {
		l.Terraces = append(l.Terraces, Terrace{X: v[0], Y: v[1], HalfWidth: v[2], Angle: v[3]})
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("level: script %s: %w", s.Name, err)
	}
	return l.Clamped(), nil
}

func uniformFunc(rng *rand.Rand) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "uniform", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		lo, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "lo", Expected: "float", Found: args[0].TypeName()}
		}
		hi, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "hi", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.Float{Value: Range{lo, hi}.Sample(rng)}, nil
	}}
}

func readFeatures(compiled *tengo.Compiled, name string, keys ...string) ([][]float64, error) {
	if !compiled.IsDefined(name) {
		return nil, fmt.Errorf("%q not defined", name)
	}
	items, ok := compiled.Get(name).Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("%q must be an array", name)
	}
	out := make([][]float64, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a map", name, i)
		}
		vals := make([]float64, len(keys))
		for k, key := range keys {
			v, ok := toFloat(m[key])
			if !ok {
				return nil, fmt.Errorf("%s[%d].%s must be a number", name, i, key)
			}
			vals[k] = v
		}
		out = append(out, vals)
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
