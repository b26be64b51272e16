/* Copyright 2018 Comcast Cable Communications Management, LLC
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

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Canonicalize pushes x through JSON so that mappings are
// map[string]interface{}, lists are []interface{} and numbers are
// float64.
func Canonicalize(x interface{}) (interface{}, error) {
	var err error

	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}

	return y, nil
}

// CopyValue makes a deep copy of mappings and lists.  Other values
// are returned as is.
func CopyValue(x interface{}) interface{} {
	switch vv := x.(type) {
	case map[string]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			acc[k] = CopyValue(v)
		}
		return acc
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, v := range vv {
			acc[i] = CopyValue(v)
		}
		return acc
	case []string:
		return append([]string(nil), vv...)
	default:
		return x
	}
}

// AsFloat tries to interpret x as a number.  Numeric strings count.
func AsFloat(x interface{}) (float64, bool) {
	switch vv := x.(type) {
	case float64:
		return vv, true
	case float32:
		return float64(vv), true
	case int:
		return float64(vv), true
	case int64:
		return float64(vv), true
	case int32:
		return float64(vv), true
	case uint64:
		return float64(vv), true
	case json.Number:
		f, err := vv.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AsInt tries to interpret x as an integer.  A float must not have a
// fractional part.
func AsInt(x interface{}) (int, bool) {
	switch vv := x.(type) {
	case int:
		return vv, true
	case int64:
		return int(vv), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
			return n, true
		}
	}
	f, ok := AsFloat(x)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// IsIntegral reports whether x is a number without a fractional part.
func IsIntegral(x interface{}) bool {
	switch x.(type) {
	case string:
		return false
	}
	_, ok := AsInt(x)
	return ok
}

// Unquestion removes (so to speak) a leading question mark (if any).
func Unquestion(p string) string {
	if strings.HasPrefix(p, "?") {
		return p[1:]
	}
	return p
}
