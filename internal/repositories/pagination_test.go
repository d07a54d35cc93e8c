package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)

	p = Pagination{Page: 3, Limit: 500}.Normalize()
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())

	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.PageCount(0))
	assert.Equal(t, 3, Pagination{Page: 1, Limit: 10}.PageCount(21))
	assert.Equal(t, 2, Pagination{Page: 1, Limit: 10}.PageCount(20))
}
