package utils

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
		ok       bool
	}{
		{"float64", float64(3.14), 3.14, true},
		{"float32", float32(2.5), 2.5, true},
		{"int", int(42), 42, true},
		{"int64", int64(64), 64, true},
		{"uint64", uint64(64), 64, true},
		{"json number", json.Number("1.25"), 1.25, true},
		{"numeric string", "7.5", 7.5, true},
		{"padded string", " 10 ", 10, true},
		{"negative string", "-2", -2, true},

		{"empty string", "", 0, false},
		{"word", "hello", 0, false},
		{"bad json number", json.Number("x"), 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"slice", []int{1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ToFloat64(tt.input)
			if ok != tt.ok {
				t.Errorf("ToFloat64(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if result != tt.expected {
				t.Errorf("ToFloat64(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int64
		ok       bool
	}{
		{"int64", int64(1000), 1000, true},
		{"int", 2000, 2000, true},
		{"integral float", float64(3000), 3000, true},
		{"json int", json.Number("4000"), 4000, true},
		{"json exponent", json.Number("5e3"), 5000, true},
		{"negative", int64(-1000), -1000, true},

		{"fractional float", 1000.5, 0, false},
		{"fractional json", json.Number("1.5"), 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"string", "1000", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ToTimestamp(tt.input)
			if ok != tt.ok {
				t.Errorf("ToTimestamp(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if result != tt.expected {
				t.Errorf("ToTimestamp(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{0, 1000, 0},
		{999, 1000, 0},
		{1000, 1000, 1},
		{1999, 1000, 1},
		{-1, 1000, -1},
		{-1000, 1000, -1},
		{-1001, 1000, -2},
	}

	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func BenchmarkToFloat64(b *testing.B) {
	values := []interface{}{
		float64(3.14),
		int64(1000),
		json.Number("2.5"),
		"4.75",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			ToFloat64(v)
		}
	}
}
