package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagingNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Paging
		want Paging
	}{
		{"defaults", Paging{}, Paging{Page: DefaultPage, Limit: DefaultLimit}},
		{"negative", Paging{Page: -3, Limit: -1}, Paging{Page: 1, Limit: DefaultLimit}},
		{"capped", Paging{Page: 2, Limit: 500}, Paging{Page: 2, Limit: MaxLimit}},
		{"kept", Paging{Page: 4, Limit: 10}, Paging{Page: 4, Limit: 10}},
		{"page capped", Paging{Page: math.MaxInt, Limit: MaxLimit}, Paging{Page: MaxPage, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}

	assert.Equal(t, 30, Paging{Page: 4, Limit: 10}.Offset())
	assert.Positive(t, Paging{Page: math.MaxInt, Limit: 500}.Normalize().Offset())
}

func TestPaginationTotals(t *testing.T) {
	jobs := JobPagination(Paging{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, jobs.TotalPages)
	assert.True(t, jobs.HasNext)
	assert.True(t, jobs.HasPrev)
	assert.EqualValues(t, 25, *jobs.TotalJobs)
	assert.Nil(t, jobs.TotalApplications)

	apps := ApplicationPagination(Paging{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, apps.TotalPages)
	assert.False(t, apps.HasNext)
	assert.False(t, apps.HasPrev)
	assert.EqualValues(t, 0, *apps.TotalApplications)
	assert.Nil(t, apps.TotalJobs)
}
