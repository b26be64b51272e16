package testutil

import (
	"os"
	"reflect"
	"testing"
)

type Person struct {
	Name string
	Age  int
}

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "simple struct",
			arg:  Person{"Ada", 36},
			want: `{"Name":"Ada","Age":36}`,
		},
		{
			name: "channel",
			arg:  make(chan int),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JS(tt.arg)
			if tt.want != "" && got != tt.want {
				t.Errorf("JS() = %v, want %v", got, tt.want)
			}
			if got == "" {
				t.Error("JS() gave nothing")
			}
		})
	}
}

func TestDwimjs(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want interface{}
	}{
		{
			name: "JSON string",
			arg:  `{"name":"Ada","age":36}`,
			want: map[string]interface{}{"name": "Ada", "age": float64(36)},
		},
		{
			name: "JSON bytes",
			arg:  []byte(`[1,2]`),
			want: []interface{}{1.0, 2.0},
		},
		{
			name: "not JSON",
			arg:  "hello world",
			want: "hello world",
		},
		{
			name: "not a string",
			arg:  12345,
			want: 12345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dwimjs(tt.arg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dwimjs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameJSON(t *testing.T) {
	if !SameJSON(map[string]interface{}{"a": 1}, `{"a":1.0}`) {
		t.Fatal("should be the same")
	}
	if SameJSON([]interface{}{1}, []interface{}{2}) {
		t.Fatal("should differ")
	}
}

func TestSpec(t *testing.T) {
	s := Spec(t, `{"b": 1, "a": 2}`)
	if !reflect.DeepEqual(s.Order, []string{"b", "a"}) {
		t.Fatalf("order %v", s.Order)
	}
}

func TestWriteFile(t *testing.T) {
	filename := WriteFile(t, "x.txt", "hi")
	bs, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != "hi" {
		t.Fatalf("got %q", bs)
	}
}
