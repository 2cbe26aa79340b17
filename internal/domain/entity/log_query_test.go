package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogQueryNormalize(t *testing.T) {
	tests := []struct {
		in       LogQuery
		expected LogQuery
	}{
		{in: LogQuery{}, expected: LogQuery{Page: 1, Limit: 10}},
		{in: LogQuery{Page: 3, Limit: 500}, expected: LogQuery{Page: 3, Limit: 100}},
		{in: LogQuery{Page: -1, Limit: 20, Title: "  dump "}, expected: LogQuery{Page: 1, Limit: 20, Title: "dump"}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.in.Normalize())
	}
}

func TestLogQueryValues(t *testing.T) {
	v := LogQuery{Page: 3, Limit: 20, Title: "dump", Tags: []string{"FLP", "TPC"}}.Values()

	assert.Equal(t, "40", v.Get("page[offset]"))
	assert.Equal(t, "20", v.Get("page[limit]"))
	assert.Equal(t, "desc", v.Get("sort[id]"))
	assert.Equal(t, "dump", v.Get("filter[title]"))
	assert.Equal(t, "FLP,TPC", v.Get("filter[tags][values]"))
	assert.Empty(t, v.Get("filter[author]"))
}
