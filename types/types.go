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

// Package types has the constructors of the built-in types and
// Standard, which makes a Registry with everything built in.
//
// A constructor reads its Field Spec (through the Loader's Config, so
// config_refs work) and returns a Supplier from the suppliers
// package.  Casts, decoration, buffering and counts are applied
// afterwards by the Loader.
package types

import (
	"sort"

	"github.com/Comcast/datagen/casters"
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/distributions"
	"github.com/Comcast/datagen/interpreters"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/preprocess"
	"github.com/Comcast/datagen/registry"
	"github.com/Comcast/datagen/schemas"
	"github.com/Comcast/datagen/sinks"
)

// Names of the registry defaults the built-in types read.
const (
	SampleListsDefault          = "sample_lists"
	CombineJoinWithDefault      = "combine_join_with"
	CSVFileSizeThresholdDefault = "csv_file_size_threshold"
	CSVBufferSizeDefault        = "csv_buffer_size"
	CSVDelimiterDefault         = "csv_delimiter"
	CSVHeadersDefault           = "csv_headers"
	DateFormatDefault           = "date_format"
	DateDurationDaysDefault     = "date_duration_days"
	GeoPrecisionDefault         = "geo_precision"
	UUIDVariantDefault          = "uuid_variant"
	CalculateTimeoutDefault     = "calculate_timeout"
)

// Defaults are the built-in defaults.
var Defaults = map[string]interface{}{
	SampleListsDefault:          false,
	CombineJoinWithDefault:      "",
	CSVFileSizeThresholdDefault: "250MB",
	CSVBufferSizeDefault:        1000,
	CSVDelimiterDefault:         ",",
	CSVHeadersDefault:           false,
	DateFormatDefault:           "02-01-2006",
	DateDurationDaysDefault:     30,
	GeoPrecisionDefault:         4,
	UUIDVariantDefault:          4,
	loader.DataDirDefault:       ".",
	loader.StrictModeDefault:    false,
	CalculateTimeoutDefault:     "1s",
	sinks.JSONIndentDefault:     0,
	loader.BufferSizeDefault:    10,
	sinks.MQTTQoSDefault:        0,
}

// Type is a built-in type: its constructor and its usage.
type Type struct {
	Name        string
	Constructor core.Constructor
	Usage       string
}

// Builtins returns the built-in types.  Calculated fields use the
// given interpreters.
func Builtins(interps map[string]core.Interpreter) []Type {
	return []Type{
		{"values", Values, valuesUsage},
		{"ref", Ref, refUsage},
		{preprocess.ConfigRefType, ConfigRef, configRefUsage},
		{"range", Range, rangeUsage},
		{"rand_range", RandRange, randRangeUsage},
		{"rand_int_range", RandIntRange, randIntRangeUsage},
		{"distribution", Distribution, distributionUsage},
		{"uuid", UUID, uuidUsage},
		{"date", Date, dateUsage},
		{"date.iso", DateISO, dateISOUsage},
		{"date.iso.millis", DateISOMillis, dateISOMillisUsage},
		{"date.cron", DateCron, dateCronUsage},
		{"geo.lat", GeoLat, geoLatUsage},
		{"geo.long", GeoLong, geoLongUsage},
		{"geo.pair", GeoPair, geoPairUsage},
		{"select_list_subset", SelectListSubset, selectListSubsetUsage},
		{preprocess.CSVType, CSV, csvUsage},
		{"combine", Combine, combineUsage},
		{"combine-list", CombineList, combineListUsage},
		{"weighted_ref", WeightedRef, weightedRefUsage},
		{preprocess.NestedType, Nested, nestedUsage},
		{"calculate", Calculate(interps), calculateUsage},
		{"templated", Templated, templatedUsage},
	}
}

// Register registers the built-in types and their usage.
func Register(r *registry.Registry, interps map[string]core.Interpreter) {
	for _, t := range Builtins(interps) {
		usage := t.Usage
		r.RegisterType(t.Name, t.Constructor)
		r.RegisterUsage(t.Name, func() string { return usage })
	}
	// csv_select only exists before preprocessing, but it still
	// gets usage.
	r.RegisterUsage(preprocess.CSVSelectType, func() string { return csvSelectUsage })
}

// SetDefaults sets the built-in defaults.
func SetDefaults(r *registry.Registry) {
	names := make([]string, 0, len(Defaults))
	for name := range Defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.SetDefault(name, Defaults[name])
	}
}

// Standard makes a Registry with the built-in types, schemas,
// casters, distributions, formats, preprocessing passes and
// defaults.
func Standard() *registry.Registry {
	r := registry.New()
	Register(r, interpreters.Standard())
	schemas.Register(r)
	casters.Register(r)
	distributions.Register(r)
	preprocess.Register(r)
	sinks.RegisterFormats(r)
	SetDefaults(r)
	return r
}
