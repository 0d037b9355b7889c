package workload

import (
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCoerceNumericToString(t *testing.T) {
	tests := []struct {
		in   uint32
		want string
	}{
		{0, "0"},
		{1, "1"},
		{8080, "8080"},
		{65535, "65535"},
		{math.MaxUint32, "4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumericToString(tt.in))
		})
	}
}

func TestDeduplicateOrdered(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil input", in: nil, want: []string{}},
		{name: "empty input", in: []string{}, want: []string{}},
		{name: "already canonical", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "unsorted", in: []string{"c", "a", "b"}, want: []string{"a", "b", "c"}},
		{name: "duplicates far apart", in: []string{"b", "a", "b", "a"}, want: []string{"a", "b"}},
		{name: "case sensitive", in: []string{"a", "A"}, want: []string{"A", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeduplicateOrdered(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeduplicateOrdered_Idempotent(t *testing.T) {
	inputs := [][]string{
		{"z", "y", "z", "x", "y"},
		{"DB_HOST=db", "DB_PORT=5432", "DB_HOST=db"},
		{"", "", "a"},
	}

	for _, in := range inputs {
		once := DeduplicateOrdered(in)
		twice := DeduplicateOrdered(once)

		assert.Equal(t, once, twice)
		assert.True(t, slices.IsSorted(once))
		for i := 1; i < len(once); i++ {
			assert.NotEqual(t, once[i-1], once[i], "adjacent duplicates in %v", once)
		}
	}
}

func TestDeduplicateOrdered_DoesNotMutateInput(t *testing.T) {
	in := []string{"b", "a", "b"}
	_ = DeduplicateOrdered(in)
	assert.Equal(t, []string{"b", "a", "b"}, in)
}

func TestPortNumber_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PortNumber
		wantErr bool
	}{
		{name: "zero", input: "port: 0", want: "0"},
		{name: "common port", input: "port: 8080", want: "8080"},
		{name: "max uint32", input: "port: " + strconv.FormatUint(math.MaxUint32, 10), want: "4294967295"},
		{name: "overflow", input: "port: 4294967296", wantErr: true},
		{name: "negative", input: "port: -1", wantErr: true},
		{name: "float", input: "port: 80.5", wantErr: true},
		{name: "quoted string", input: `port: "8080"`, wantErr: true},
		{name: "word", input: "port: http", wantErr: true},
		{name: "sequence", input: "port: [80]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Port PortNumber `yaml:"port"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Port)
		})
	}
}

func TestStringSet_UnmarshalYAML(t *testing.T) {
	var out struct {
		Values StringSet `yaml:"values"`
	}
	err := yaml.Unmarshal([]byte("values: [web, db, web, cache]"), &out)
	require.NoError(t, err)
	assert.Equal(t, StringSet{"cache", "db", "web"}, out.Values)

	err = yaml.Unmarshal([]byte("values: {a: b}"), &out)
	assert.Error(t, err)
}
