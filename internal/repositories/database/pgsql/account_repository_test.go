package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedUnique(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"single", []string{"7f1c"}, []string{"7f1c"}},
		{"unsorted", []string{"c", "a", "b"}, []string{"a", "b", "c"}},
		{"duplicates", []string{"b", "a", "b", "a"}, []string{"a", "b"}},
		{"already sorted", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{
			"uuids",
			[]string{"f47ac10b-58cc-4372-a567-0e02b2c3d479", "0b6f1c2e-9a3d-4e8b-8f55-2d1a7c4b9e10", "f47ac10b-58cc-4372-a567-0e02b2c3d479"},
			[]string{"0b6f1c2e-9a3d-4e8b-8f55-2d1a7c4b9e10", "f47ac10b-58cc-4372-a567-0e02b2c3d479"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortedUnique(tt.in))
		})
	}
}

func TestSortedUniqueLeavesInputUntouched(t *testing.T) {
	in := []string{"b", "a"}

	_ = sortedUnique(in)

	assert.Equal(t, []string{"b", "a"}, in)
}
