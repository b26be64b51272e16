package sinks

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"

	"gopkg.in/yaml.v2"
)

// Names of registry defaults used by sinks.
const (
	JSONIndentDefault = "format_json_indent"
	MQTTQoSDefault    = "mqtt_qos"
)

// Names of the built-in formats.
const (
	JSONFormat       = "json"
	JSONPrettyFormat = "json-pretty"
	YAMLFormat       = "yaml"
	CSVFormat        = "csv"
)

// RegisterFormats registers the built-in formats.
func RegisterFormats(r *registry.Registry) {
	r.RegisterFormat(JSONFormat, JSON)
	r.RegisterFormat(JSONPrettyFormat, NewJSON(2))
	r.RegisterFormat(YAMLFormat, YAML)
	r.RegisterFormat(CSVFormat, CSV)
}

// Formatter finds the named format.  The json format is indented if
// the format_json_indent default is positive.
func Formatter(r *registry.Registry, name string) (core.Formatter, error) {
	if name == JSONFormat {
		if x, err := r.Default(JSONIndentDefault); err == nil {
			if n, ok := core.AsInt(x); ok && 0 < n {
				return NewJSON(n), nil
			}
		}
	}
	f, have := r.Format(name)
	if !have {
		return nil, core.Configf("unknown format %q", name)
	}
	return f, nil
}

// JSON renders the record's values as one line of JSON with the
// fields in order.
func JSON(r *core.Record) ([]byte, error) {
	return r.MarshalOrderedJSON()
}

// NewJSON returns a JSON format indented by the given number of
// spaces.
func NewJSON(indent int) core.Formatter {
	prefix := strings.Repeat(" ", indent)
	return func(r *core.Record) ([]byte, error) {
		js, err := r.MarshalOrderedJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, js, "", prefix); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// YAML renders the record's values as a YAML document with the
// fields in order.
func YAML(r *core.Record) ([]byte, error) {
	doc := make(yaml.MapSlice, 0, len(r.Keys))
	for _, k := range r.Keys {
		doc = append(doc, yaml.MapItem{
			Key:   k,
			Value: orderedYAML(r.Values[k], r.Order(k)),
		})
	}
	bs, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte("---\n"), bytes.TrimRight(bs, "\n")...), nil
}

// orderedYAML turns the objects in v into MapSlices with their keys
// in order.
func orderedYAML(v interface{}, o *core.KeyOrder) interface{} {
	if o == nil {
		return v
	}
	switch vv := v.(type) {
	case map[string]interface{}:
		acc := make(yaml.MapSlice, 0, len(vv))
		for _, k := range core.OrderedKeys(o.Keys, vv) {
			acc = append(acc, yaml.MapItem{
				Key:   k,
				Value: orderedYAML(vv[k], o.Of(k)),
			})
		}
		return acc
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, x := range vv {
			acc[i] = orderedYAML(x, o)
		}
		return acc
	}
	return v
}

// CSV renders the record's values as one CSV row.  Values that
// aren't strings or numbers are written as JSON.
func CSV(r *core.Record) ([]byte, error) {
	row := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		switch v := r.Values[k].(type) {
		case []interface{}, map[string]interface{}:
			js, err := core.MarshalOrderedValue(v, r.Order(k))
			if err != nil {
				return nil, err
			}
			row[i] = string(js)
		default:
			row[i] = core.Stringify(v)
		}
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
