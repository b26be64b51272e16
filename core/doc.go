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

// Package core provides the core gear for spec-driven synthetic data
// generation.
//
// A data Spec names fields.  Each field has a Field Spec that gives
// a type, some data and some config.  A Spec can also have refs,
// which are Field Specs that other fields can use but which are
// never emitted, and field groups, which select the subset of fields
// that appear in each record.
//
// The primary abstraction is the Supplier, which produces a field's
// value for a given iteration.  A Loader (see package loader) turns
// Field Specs into Suppliers by way of Constructors registered (see
// package registry) under type names.
//
// Errors come in three kinds.  A ConfigurationError means the spec
// is bad, and only happens before generation starts.  A RuntimeError
// means something went wrong while generating.  A ResourceError means
// a packaged resource is missing.
//
// To use this package, ParseSpec() a document, give it to a Loader,
// and then hand the Loader to a generator.
package core
