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

package suppliers

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/Comcast/datagen/core"
)

// Constant always returns the same value.
type Constant struct {
	Value interface{}
}

// Next implements core.Supplier.
func (s *Constant) Next(int) (interface{}, error) {
	return core.CopyValue(s.Value), nil
}

// ListRotating returns the elements of a list in order, wrapping
// after the last one.
type ListRotating struct {
	values []interface{}
}

// NewListRotating makes a ListRotating.  The list can't be empty.
func NewListRotating(values []interface{}) (*ListRotating, error) {
	if len(values) == 0 {
		return nil, core.Configf("empty list of values")
	}
	return &ListRotating{
		values: values,
	}, nil
}

// Next implements core.Supplier.
func (s *ListRotating) Next(iteration int) (interface{}, error) {
	return core.CopyValue(s.values[mod(iteration, len(s.values))]), nil
}

// ListSampling returns a random element of a list.
type ListSampling struct {
	values []interface{}
}

// NewListSampling makes a ListSampling.  The list can't be empty.
func NewListSampling(values []interface{}) (*ListSampling, error) {
	if len(values) == 0 {
		return nil, core.Configf("empty list of values")
	}
	return &ListSampling{
		values: values,
	}, nil
}

// Next implements core.Supplier.
func (s *ListSampling) Next(int) (interface{}, error) {
	return core.CopyValue(s.values[rand.Intn(len(s.values))]), nil
}

// Weighted returns one of its choices at random with probability
// proportional to the choice's weight.
type Weighted struct {
	choices []interface{}
	cum     []float64
	total   float64
}

// NewWeighted makes a Weighted.  Weights can't be negative, and at
// least one must be positive.
func NewWeighted(choices []interface{}, weights []float64) (*Weighted, error) {
	if len(choices) != len(weights) {
		return nil, core.Configf("%d choices but %d weights", len(choices), len(weights))
	}
	if len(choices) == 0 {
		return nil, core.Configf("no weighted choices")
	}
	s := &Weighted{
		choices: choices,
		cum:     make([]float64, len(weights)),
	}
	for i, w := range weights {
		if w < 0 {
			return nil, core.Configf("negative weight %v for %v", w, choices[i])
		}
		s.total += w
		s.cum[i] = s.total
	}
	if s.total <= 0 {
		return nil, core.Configf("weights sum to %v", s.total)
	}
	return s, nil
}

// NewWeightedMap makes a Weighted from a mapping of choices to
// weights.  The choices are strings.  Choices are kept in sorted
// order, so a given seed gives the same draws.
func NewWeightedMap(m map[string]interface{}) (*Weighted, error) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	choices := make([]interface{}, len(names))
	weights := make([]float64, len(names))
	for i, name := range names {
		w, ok := core.AsFloat(m[name])
		if !ok {
			return nil, core.Configf("weight %v for %q is not a number", m[name], name)
		}
		choices[i] = name
		weights[i] = w
	}
	return NewWeighted(choices, weights)
}

// NewWeightedCounts makes a Weighted of integers from a mapping of
// numeric strings to weights.
func NewWeightedCounts(m map[string]interface{}) (*Weighted, error) {
	w, err := NewWeightedMap(m)
	if err != nil {
		return nil, err
	}
	for i, c := range w.choices {
		n, err := strconv.Atoi(c.(string))
		if err != nil {
			return nil, core.Configf("count %q is not an integer", c)
		}
		w.choices[i] = n
	}
	return w, nil
}

// Choices returns the choices in the order they are drawn from.
func (s *Weighted) Choices() []interface{} {
	return append([]interface{}(nil), s.choices...)
}

// Next implements core.Supplier.
func (s *Weighted) Next(int) (interface{}, error) {
	r := rand.Float64() * s.total
	i := sort.Search(len(s.cum), func(i int) bool { return r < s.cum[i] })
	if i == len(s.cum) {
		i = len(s.cum) - 1
	}
	return s.choices[i], nil
}

// mod is the non-negative remainder.
func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
