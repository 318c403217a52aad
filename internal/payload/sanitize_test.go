package payload

import (
	"reflect"
	"testing"
)

func TestSanitizeStripsNilKeys(t *testing.T) {
	in := map[string]interface{}{
		"name":  "Luna",
		"breed": nil,
		"meta": map[string]interface{}{
			"color":     "black",
			"microchip": nil,
		},
	}

	got := Sanitize(in).(map[string]interface{})

	want := map[string]interface{}{
		"name": "Luna",
		"meta": map[string]interface{}{
			"color": "black",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sanitize mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestSanitizeArraysKeepOrder(t *testing.T) {
	in := []interface{}{
		map[string]interface{}{"id": "a", "gone": nil},
		"plain",
		map[string]interface{}{"id": "b"},
	}

	got := Sanitize(in).([]interface{})

	if len(got) != 3 {
		t.Fatalf("array length changed: %d", len(got))
	}
	if got[0].(map[string]interface{})["id"] != "a" || got[1] != "plain" || got[2].(map[string]interface{})["id"] != "b" {
		t.Fatalf("element order changed: %#v", got)
	}
	if _, ok := got[0].(map[string]interface{})["gone"]; ok {
		t.Fatal("nil key survived inside array element")
	}
}

func TestSanitizePrimitivesPassThrough(t *testing.T) {
	for _, v := range []interface{}{"s", 42, 3.14, true, false} {
		if got := Sanitize(v); got != v {
			t.Fatalf("primitive %v changed to %v", v, got)
		}
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]interface{}{"a": 1, "b": 2}
	src := map[string]interface{}{"b": 3, "c": 4}

	got := Merge(dst, src)

	if got["a"] != 1 || got["b"] != 3 || got["c"] != 4 {
		t.Fatalf("merge mismatch: %#v", got)
	}

	if got := Merge(nil, src); got["c"] != 4 {
		t.Fatalf("nil dst merge mismatch: %#v", got)
	}
}
