package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirst(t *testing.T) {
	v, ok := First([]string{"CmpBy", "HashBy"})
	assert.True(t, ok)
	assert.Equal(t, "CmpBy", v)

	v, ok = First([]string(nil))
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestOnly(t *testing.T) {
	v, ok := Only([]int{7})
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = Only([]int{})
	assert.False(t, ok)

	_, ok = Only([]int{1, 2})
	assert.False(t, ok)
}

func TestIsMultiple(t *testing.T) {
	assert.False(t, IsMultiple([]int{}))
	assert.False(t, IsMultiple([]int{1}))
	assert.True(t, IsMultiple([]int{1, 2}))
}
