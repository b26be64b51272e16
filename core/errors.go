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

package core

// These errors are user errors, not internal errors.
//
// A ConfigurationError is only ever returned while a spec is being
// preprocessed or compiled.  A RuntimeError is only ever returned
// while records are being generated.

import (
	"errors"
	"fmt"
)

// ConfigurationError occurs when a spec is structurally invalid,
// references an unknown type or key, fails schema validation, or has
// self-contradictory config.
type ConfigurationError struct {
	Msg string

	// Key is the field or ref name involved, if known.
	Key string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return "configuration error: " + e.Key + ": " + e.Msg
	}
	return "configuration error: " + e.Msg
}

// Configf makes a ConfigurationError with a formatted message.
func Configf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// KeyConfigf makes a ConfigurationError about the given key.
func KeyConfigf(key, format string, args ...interface{}) error {
	return &ConfigurationError{Key: key, Msg: fmt.Sprintf(format, args...)}
}

// RuntimeError occurs during generation when something that compiled
// fine turns out to be wrong: an unknown weighted ref key, a CSV read
// past the end of its data, a field group naming a missing field or a
// buffered read outside its window.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Msg
}

// Runtimef makes a RuntimeError with a formatted message.
func Runtimef(format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// ResourceError occurs when a packaged resource, such as a type's JSON
// schema, cannot be found or read.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return `resource "` + e.Resource + `" not found`
	}
	return `resource "` + e.Resource + `": ` + e.Err.Error()
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsRuntimeError reports whether err is or wraps a RuntimeError.
func IsRuntimeError(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re)
}

// IsResourceError reports whether err is or wraps a ResourceError.
func IsResourceError(err error) bool {
	var re *ResourceError
	return errors.As(err, &re)
}
