// Package schemas has the JSON Schemas for the built-in types and a
// Validator that checks Field Specs against them in strict mode.
//
// The schemas are embedded.  A type's schema is found through the
// registry, so an extension can register schemas for its own types
// (or replace the built-in ones).
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed files/*.schema.json
var files embed.FS

const suffix = ".schema.json"

// Types returns the names of the types with embedded schemas.
func Types() []string {
	entries, err := fs.ReadDir(files, "files")
	if err != nil {
		return nil
	}
	var acc []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, suffix) {
			acc = append(acc, strings.TrimSuffix(name, suffix))
		}
	}
	sort.Strings(acc)
	return acc
}

// Load returns a core.SchemaLoader for the embedded schema of the
// given type.  A missing or broken schema is a ResourceError.
func Load(typ string) core.SchemaLoader {
	return func() (interface{}, error) {
		name := path.Join("files", typ+suffix)
		bs, err := files.ReadFile(name)
		if err != nil {
			return nil, &core.ResourceError{Resource: name, Err: err}
		}
		var doc interface{}
		if err := json.Unmarshal(bs, &doc); err != nil {
			return nil, &core.ResourceError{Resource: name, Err: err}
		}
		return doc, nil
	}
}

// Register registers the embedded schemas.
func Register(r *registry.Registry) {
	for _, typ := range Types() {
		r.RegisterSchema(typ, Load(typ))
	}
}

// Validator checks Field Specs against the schemas in a registry.
// Compiled schemas are cached.
type Validator struct {
	reg      *registry.Registry
	compiled map[string]*jsonschema.Schema
}

// NewValidator makes a Validator.
func NewValidator(r *registry.Registry) *Validator {
	return &Validator{
		reg:      r,
		compiled: make(map[string]*jsonschema.Schema),
	}
}

func (v *Validator) schema(typ string) (*jsonschema.Schema, error) {
	if s, have := v.compiled[typ]; have {
		return s, nil
	}
	load, have := v.reg.Schema(typ)
	if !have {
		return nil, &core.ResourceError{Resource: typ + suffix}
	}
	doc, err := load()
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	id := typ + suffix
	if err := c.AddResource(id, doc); err != nil {
		return nil, &core.ResourceError{Resource: id, Err: err}
	}
	s, err := c.Compile(id)
	if err != nil {
		return nil, &core.ResourceError{Resource: id, Err: err}
	}
	v.compiled[typ] = s
	return s, nil
}

// Validate checks the Field Spec, given as a mapping, against the
// type's schema.  A violation is a ConfigurationError listing every
// problem.  A type without a schema is a ResourceError.
func (v *Validator) Validate(typ string, fieldSpec map[string]interface{}) error {
	s, err := v.schema(typ)
	if err != nil {
		return err
	}
	doc, err := core.Canonicalize(fieldSpec)
	if err != nil {
		return core.Configf("can't validate %s spec: %s", typ, err)
	}
	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	ve, is := err.(*jsonschema.ValidationError)
	if !is {
		return core.Configf("%s spec: %s", typ, err)
	}
	return core.Configf("%s spec fails its schema: %s", typ, strings.Join(problems(ve), "; "))
}

// problems collects the leaf errors.
func problems(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", loc, ve.Error())}
	}
	var acc []string
	for _, c := range ve.Causes {
		acc = append(acc, problems(c)...)
	}
	return acc
}
