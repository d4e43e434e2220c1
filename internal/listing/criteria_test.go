package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAlternatives(t *testing.T) {
	assert.Nil(t, SplitAlternatives(""))
	assert.Equal(t, []string{"loop"}, SplitAlternatives("loop"))
	assert.Equal(t, []string{"loop", "array"}, SplitAlternatives("loop, array"))
	assert.Equal(t, []string{"a", "b"}, SplitAlternatives(" a ,, b , "))
}

func TestContainsAny(t *testing.T) {
	cond, args, ok := ContainsAny("questions.content", "Loop, Array")
	require.True(t, ok)
	assert.Equal(t, "(LOWER(questions.content) LIKE ? OR LOWER(questions.content) LIKE ?)", cond)
	assert.Equal(t, []interface{}{"%loop%", "%array%"}, args)

	_, _, ok = ContainsAny("questions.content", "")
	assert.False(t, ok)

	_, _, ok = ContainsAny("questions.content", " , ,")
	assert.False(t, ok)
}

func TestCreatedBounds(t *testing.T) {
	c := Criteria{CreatedFrom: "2024-03-01T10:30", CreatedTo: "2024-03-02T12:00"}

	from, ok := c.CreatedFromTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), from)

	to, ok := c.CreatedToTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 59, 0, time.UTC), to)
}

func TestCreatedBoundsIgnoreGarbage(t *testing.T) {
	c := Criteria{CreatedFrom: "yesterday", CreatedTo: ""}

	_, ok := c.CreatedFromTime()
	assert.False(t, ok)

	_, ok = c.CreatedToTime()
	assert.False(t, ok)
}
