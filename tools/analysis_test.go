package tools

import (
	"reflect"
	"testing"

	"github.com/Comcast/datagen/util/testutil"
)

const analysisSpec = `{
  "name": {"type": "combine", "refs": ["first", "last"], "config": {"join_with": " "}},
  "pet": {"type": "weighted_ref", "data": {"cats": 0.5, "birds": 0.5}},
  "user": {"type": "nested", "fields": {"id": {"type": "uuid"}, "tag": {"type": "ref", "ref": "tags"}}},
  "total": {"type": "calculate", "fields": {"p": "price"}, "formula": "{{p}} * 2"},
  "price": {"type": "rand_range", "data": [1, 2], "config": {"config_ref": "money"}},
  "odd": {"type": "squiggle"},
  "refs": {
    "first": ["a", "b"],
    "last": ["c"],
    "cats": {"type": "values", "data": "cat"},
    "tags": ["x"],
    "money": {"type": "config_ref", "config": {"precision": 2}},
    "spare": [1]
  }
}`

func TestAnalyze(t *testing.T) {
	known := func(typ string) bool { return typ != "squiggle" }
	a, err := Analyze(testutil.Spec(t, analysisSpec), known)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"name", "pet", "user", "total", "price", "odd"}; !reflect.DeepEqual(a.Fields, want) {
		t.Errorf("fields %v", a.Fields)
	}
	if want := []string{"first", "last"}; !reflect.DeepEqual(a.Dependencies["name"], want) {
		t.Errorf("name uses %v", a.Dependencies["name"])
	}
	if want := []string{"birds", "cats"}; !reflect.DeepEqual(a.Dependencies["pet"], want) {
		t.Errorf("pet uses %v", a.Dependencies["pet"])
	}
	if want := []string{"tags"}; !reflect.DeepEqual(a.Dependencies["user"], want) {
		t.Errorf("user uses %v", a.Dependencies["user"])
	}
	if want := []string{"price"}; !reflect.DeepEqual(a.Dependencies["total"], want) {
		t.Errorf("total uses %v", a.Dependencies["total"])
	}
	if want := []string{"money"}; !reflect.DeepEqual(a.Dependencies["price"], want) {
		t.Errorf("price uses %v", a.Dependencies["price"])
	}
	if want := []string{"squiggle"}; !reflect.DeepEqual(a.UnknownTypes, want) {
		t.Errorf("unknown types %v", a.UnknownTypes)
	}
	if want := []string{"birds"}; !reflect.DeepEqual(a.MissingNames, want) {
		t.Errorf("missing %v", a.MissingNames)
	}
	if want := []string{"spare"}; !reflect.DeepEqual(a.UnusedRefs, want) {
		t.Errorf("unused %v", a.UnusedRefs)
	}
	if a.Types["uuid"] != 1 || a.Types["values"] != 5 {
		t.Errorf("types %v", a.Types)
	}
}
