/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package generator drives Suppliers to make records.
//
// Each iteration asks the key provider which fields to make, gets
// each field's value from its Supplier, and hands the values and the
// finished record to the sinks.  Any error ends the run.
package generator

import (
	"context"
	"fmt"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/keys"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/util"
)

// FieldSink receives each field value as it is made.
type FieldSink interface {
	Field(ctx context.Context, iteration int, key string, value interface{}) error
}

// FieldSinkFunc makes a function into a FieldSink.
type FieldSinkFunc func(ctx context.Context, iteration int, key string, value interface{}) error

// Field calls f.
func (f FieldSinkFunc) Field(ctx context.Context, iteration int, key string, value interface{}) error {
	return f(ctx, iteration, key, value)
}

// RecordSink receives each finished record.
type RecordSink interface {
	Record(ctx context.Context, r *core.Record) error
}

// RecordSinkFunc makes a function into a RecordSink.
type RecordSinkFunc func(ctx context.Context, r *core.Record) error

// Record calls f.
func (f RecordSinkFunc) Record(ctx context.Context, r *core.Record) error {
	return f(ctx, r)
}

// Option configures a Generator.
type Option func(g *Generator)

// WithFieldSink sets the FieldSink.
func WithFieldSink(s FieldSink) Option {
	return func(g *Generator) {
		g.fields = s
	}
}

// WithRecordSink sets the RecordSink.
func WithRecordSink(s RecordSink) Option {
	return func(g *Generator) {
		g.records = s
	}
}

// Generator makes records.
type Generator struct {
	loader core.Loader
	keys   keys.Provider

	fields  FieldSink
	records RecordSink
}

// New makes a Generator.
func New(l core.Loader, kp keys.Provider, opts ...Option) *Generator {
	g := &Generator{
		loader: l,
		keys:   kp,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ForLoader makes a Generator whose key provider comes from the
// loader's spec: its fields in order, and its field_groups.  Field
// groups that name undefined fields are a ConfigurationError here
// rather than during a run.
func ForLoader(l *loader.Loader, opts ...Option) (*Generator, error) {
	kp, err := l.KeyProvider()
	if err != nil {
		return nil, err
	}
	return New(l, kp, opts...), nil
}

// Next makes the record for an iteration.  The FieldSink (if any)
// gets each value, but the RecordSink doesn't get the record.
func (g *Generator) Next(ctx context.Context, iteration int) (*core.Record, error) {
	group, names, err := g.keys.Get()
	if err != nil {
		return nil, fmt.Errorf("iteration %d: %w", iteration, err)
	}
	r := core.NewRecord(iteration, group, len(names))
	for _, name := range names {
		s, err := g.loader.Get(name)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}
		x, err := s.Next(iteration)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %s: %w", iteration, name, err)
		}
		if g.fields != nil {
			if err := g.fields.Field(ctx, iteration, name, x); err != nil {
				return nil, err
			}
		}
		r.Set(name, x)
		if o, is := s.(core.Ordered); is {
			r.SetOrder(name, o.KeyOrder())
		}
	}
	return r, nil
}

// Run makes records for iterations 0 through n-1, or forever if n
// is negative, and returns the number of records made.
//
// The context is checked before each iteration.
func (g *Generator) Run(ctx context.Context, n int) (int, error) {
	made := 0
	for i := 0; n < 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return made, err
		}
		r, err := g.Next(ctx, i)
		if err != nil {
			return made, err
		}
		if g.records != nil {
			if err := g.records.Record(ctx, r); err != nil {
				return made, fmt.Errorf("iteration %d: %w", i, err)
			}
		}
		made++
	}
	util.Logf("generator made %d records", made)
	return made, nil
}

// Collect runs and returns the records.  n must not be negative.
func (g *Generator) Collect(ctx context.Context, n int) ([]*core.Record, error) {
	if n < 0 {
		return nil, core.Configf("can't collect %d records", n)
	}
	acc := make([]*core.Record, 0, n)
	records := g.records
	defer func() { g.records = records }()
	g.records = RecordSinkFunc(func(ctx context.Context, r *core.Record) error {
		acc = append(acc, r)
		if records != nil {
			return records.Record(ctx, r)
		}
		return nil
	})
	if _, err := g.Run(ctx, n); err != nil {
		return nil, err
	}
	return acc, nil
}
