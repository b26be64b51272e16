package core

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ConfigRefKey is the config option that points at a config_ref ref.
const ConfigRefKey = "config_ref"

// Config is a Field Spec's configuration.
//
// Options are looked up in the Field Spec's own config first.  If an
// option isn't there and the config has a config_ref, the referenced
// ref's config is consulted.  That indirection is resolved anew on
// every lookup.
type Config struct {
	own map[string]interface{}

	// resolve, if not nil, returns the config of the config_ref
	// target.
	resolve func(name string) (map[string]interface{}, error)
}

// NewConfig makes a Config.  The resolver can be nil if config_ref
// isn't supported.
func NewConfig(own map[string]interface{}, resolve func(name string) (map[string]interface{}, error)) Config {
	return Config{
		own:     own,
		resolve: resolve,
	}
}

// Get returns the value of an option.
func (c Config) Get(name string) (interface{}, bool) {
	if x, have := c.own[name]; have {
		return x, true
	}
	if c.resolve == nil || name == ConfigRefKey {
		return nil, false
	}
	ref, have := c.own[ConfigRefKey].(string)
	if !have || ref == "" {
		return nil, false
	}
	m, err := c.resolve(ref)
	if err != nil {
		log.Printf("warning: %s %s: %s", ConfigRefKey, ref, err)
		return nil, false
	}
	if m == nil {
		return nil, false
	}
	x, have := m[name]
	return x, have
}

// Has reports whether the option is set.
func (c Config) Has(name string) bool {
	_, have := c.Get(name)
	return have
}

// String returns the option as a string.
func (c Config) String(name, def string) string {
	x, have := c.Get(name)
	if !have || x == nil {
		return def
	}
	if s, is := x.(string); is {
		return s
	}
	if f, is := x.(float64); is && IsIntegral(f) {
		return strconv.Itoa(int(f))
	}
	return fmt.Sprintf("%v", x)
}

// Int returns the option as an int.
func (c Config) Int(name string, def int) (int, error) {
	x, have := c.Get(name)
	if !have || x == nil {
		return def, nil
	}
	n, ok := AsInt(x)
	if !ok {
		return 0, Configf("config %s=%v is not an integer", name, x)
	}
	return n, nil
}

// Float returns the option as a float64.
func (c Config) Float(name string, def float64) (float64, error) {
	x, have := c.Get(name)
	if !have || x == nil {
		return def, nil
	}
	f, ok := AsFloat(x)
	if !ok {
		return 0, Configf("config %s=%v is not a number", name, x)
	}
	return f, nil
}

// Bool returns the option as a bool.  Strings like "true" and "0"
// are accepted since shorthand params are always strings.
func (c Config) Bool(name string, def bool) (bool, error) {
	x, have := c.Get(name)
	if !have || x == nil {
		return def, nil
	}
	switch vv := x.(type) {
	case bool:
		return vv, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(vv))
		if err != nil {
			return false, Configf("config %s=%q is not a boolean", name, vv)
		}
		return b, nil
	}
	if f, ok := AsFloat(x); ok {
		return f != 0, nil
	}
	return false, Configf("config %s=%v is not a boolean", name, x)
}

// Duration returns the option as a time.Duration.  A bare number is
// taken as milliseconds.
func (c Config) Duration(name string, def time.Duration) (time.Duration, error) {
	x, have := c.Get(name)
	if !have || x == nil {
		return def, nil
	}
	if f, ok := AsFloat(x); ok {
		return time.Duration(f * float64(time.Millisecond)), nil
	}
	s, _ := x.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, Configf("config %s=%v is not a duration", name, x)
	}
	return d, nil
}

// Bytes returns the option as a byte count.  Strings like "250MB"
// and "1 KiB" are accepted.
func (c Config) Bytes(name string, def uint64) (uint64, error) {
	x, have := c.Get(name)
	if !have || x == nil {
		return def, nil
	}
	return ParseBytes(x)
}

// ParseBytes interprets a number or a human-readable size.
func ParseBytes(x interface{}) (uint64, error) {
	if n, ok := AsInt(x); ok && n >= 0 {
		return uint64(n), nil
	}
	s, is := x.(string)
	if !is {
		return 0, Configf("size %v (%T) is not a number of bytes", x, x)
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, Configf("size %q: %s", s, err)
	}
	return n, nil
}

// Map returns a copy of the Field Spec's own options.
func (c Config) Map() map[string]interface{} {
	acc := make(map[string]interface{}, len(c.own))
	for k, v := range c.own {
		acc[k] = v
	}
	return acc
}
