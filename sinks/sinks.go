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

// Package sinks has record formats and places to send generated
// records: a writer, a BoltDB file, an SQL table, a WebSocket and an
// MQTT broker.
//
// Every sink has a Record method that matches generator.RecordSink.
package sinks

import (
	"context"
	"io"
	"sync"

	"github.com/Comcast/datagen/core"
)

// Sink receives records.
type Sink interface {
	Record(ctx context.Context, r *core.Record) error
}

// Writer writes each formatted record followed by a newline.
type Writer struct {
	W      io.Writer
	Format core.Formatter

	mu sync.Mutex
}

// NewWriter makes a Writer.  A nil format means JSON.
func NewWriter(w io.Writer, format core.Formatter) *Writer {
	if format == nil {
		format = JSON
	}
	return &Writer{
		W:      w,
		Format: format,
	}
}

// Record writes the record.
func (w *Writer) Record(ctx context.Context, r *core.Record) error {
	bs, err := w.Format(r)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err = w.W.Write(append(bs, '\n')); err != nil {
		return &core.ResourceError{Resource: "output", Err: err}
	}
	return nil
}

// Tee sends each record to every one of its sinks in order.  The
// first error stops it.
type Tee []Sink

// Record sends the record to each sink.
func (t Tee) Record(ctx context.Context, r *core.Record) error {
	for _, s := range t {
		if err := s.Record(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
