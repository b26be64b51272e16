package loader

import (
	"github.com/Comcast/datagen/casters"
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/suppliers"
)

// Config options the alteration pipeline reads.
const (
	CastConfig       = "cast"
	PrefixConfig     = "prefix"
	SuffixConfig     = "suffix"
	QuoteConfig      = "quote"
	BufferConfig     = "buffer"
	BufferSizeConfig = "buffer_size"
	CountConfig      = "count"
	AsListConfig     = "as_list"

	BufferSizeDefault = "buffer_size"
)

// alter wraps a Supplier according to its Field Spec's config:
// first a cast, then decoration, then a buffer, then multiplicity.
// Each step only happens if its options are present.
//
// Multiplicity requires a count.  A count turns on as_list unless
// as_list is false, and Suppliers that handle their own count are
// left alone.
func (l *Loader) alter(fs *core.FieldSpec, s core.Supplier) (core.Supplier, error) {
	cfg := l.Config(fs)
	base := s

	if spec := cfg.String(CastConfig, ""); spec != "" {
		c, err := casters.Chain(l.reg, spec)
		if err != nil {
			return nil, err
		}
		s = &suppliers.Cast{
			Wrapped: s,
			Caster:  c,
		}
	}

	if cfg.Has(PrefixConfig) || cfg.Has(SuffixConfig) || cfg.Has(QuoteConfig) {
		s = &suppliers.Decorated{
			Wrapped: s,
			Prefix:  cfg.String(PrefixConfig, ""),
			Suffix:  cfg.String(SuffixConfig, ""),
			Quote:   cfg.String(QuoteConfig, ""),
		}
	}

	buffer, err := cfg.Bool(BufferConfig, false)
	if err != nil {
		return nil, err
	}
	if buffer || cfg.Has(BufferSizeConfig) {
		def := 10
		if x, err := l.reg.Default(BufferSizeDefault); err == nil {
			if n, ok := core.AsInt(x); ok {
				def = n
			}
		}
		size, err := cfg.Int(BufferSizeConfig, def)
		if err != nil {
			return nil, err
		}
		if s, err = suppliers.NewBuffered(s, size); err != nil {
			return nil, err
		}
	}

	if ch, is := base.(core.CountHandler); is && ch.HandlesCount() {
		return s, nil
	}
	x, have := cfg.Get(CountConfig)
	if !have {
		return s, nil
	}
	asList, err := cfg.Bool(AsListConfig, true)
	if err != nil {
		return nil, err
	}
	if !asList {
		return s, nil
	}
	count, err := CountSupplier(l.reg, x)
	if err != nil {
		return nil, err
	}
	return &suppliers.Multiple{
		Wrapped: s,
		Count:   count,
	}, nil
}
