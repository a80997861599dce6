package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeJSON(t *testing.T) {
	type inner struct {
		A string `json:"a,omitempty"`
		B string `json:"b,omitempty"`
	}
	type outer struct {
		Name  string `json:"name,omitempty"`
		Inner *inner `json:"inner,omitempty"`
	}

	got, err := mergeJSON(outer{Name: "x", Inner: &inner{A: "1"}}, []byte(`{"inner":{"b":"2"}}`))
	assert.NoError(t, err)
	assert.Equal(t, outer{Name: "x", Inner: &inner{A: "1", B: "2"}}, got)

	_, err = mergeJSON(outer{}, []byte(`"scalar"`))
	assert.Error(t, err)
}
