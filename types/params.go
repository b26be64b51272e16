package types

import (
	"time"

	"github.com/Comcast/datagen/core"
)

// params reads a Field Spec's config, falling back to registry
// defaults.
type params struct {
	fs  *core.FieldSpec
	cfg core.Config
	reg core.Registry
}

func paramsOf(fs *core.FieldSpec, l core.Loader) *params {
	return &params{
		fs:  fs,
		cfg: l.Config(fs),
		reg: l.Registry(),
	}
}

// def returns the named registry default as a one-entry Config, so
// the typed accessors can parse it.
func (p *params) def(name string) core.Config {
	own := map[string]interface{}{}
	if name != "" {
		if x, err := p.reg.Default(name); err == nil {
			own[name] = x
		}
	}
	return core.NewConfig(own, nil)
}

func (p *params) String(name, defName, def string) string {
	return p.cfg.String(name, p.def(defName).String(defName, def))
}

func (p *params) Int(name, defName string, def int) (int, error) {
	d, err := p.def(defName).Int(defName, def)
	if err != nil {
		return 0, err
	}
	return p.cfg.Int(name, d)
}

func (p *params) Float(name, defName string, def float64) (float64, error) {
	d, err := p.def(defName).Float(defName, def)
	if err != nil {
		return 0, err
	}
	return p.cfg.Float(name, d)
}

func (p *params) Bool(name, defName string, def bool) (bool, error) {
	d, err := p.def(defName).Bool(defName, def)
	if err != nil {
		return false, err
	}
	return p.cfg.Bool(name, d)
}

func (p *params) Duration(name, defName string, def time.Duration) (time.Duration, error) {
	d, err := p.def(defName).Duration(defName, def)
	if err != nil {
		return 0, err
	}
	return p.cfg.Duration(name, d)
}

func (p *params) Bytes(name, defName string, def uint64) (uint64, error) {
	d, err := p.def(defName).Bytes(defName, def)
	if err != nil {
		return 0, err
	}
	return p.cfg.Bytes(name, d)
}

// numbers interprets the data as a list of n to m numbers.
func (p *params) numbers(typ string, n, m int) ([]float64, error) {
	xs, is := p.fs.Data.([]interface{})
	if !is || len(xs) < n || m < len(xs) {
		if n == m {
			return nil, core.Configf("%s needs a list of %d numbers, not %v", typ, n, p.fs.Data)
		}
		return nil, core.Configf("%s needs a list of %d to %d numbers, not %v", typ, n, m, p.fs.Data)
	}
	acc := make([]float64, len(xs))
	for i, x := range xs {
		f, ok := core.AsFloat(x)
		if !ok {
			return nil, core.Configf("%s: %v (%T) is not a number", typ, x, x)
		}
		acc[i] = f
	}
	return acc, nil
}
