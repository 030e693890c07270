package models

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewID()
	after := time.Now().UnixMilli()

	// 13 millisecond digits plus the 7 character suffix.
	require.Len(t, id, 20)

	ms, err := strconv.ParseInt(id[:13], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)

	for _, r := range id[13:] {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z'), "suffix rune %q", r)
	}

	assert.NotEqual(t, id, NewID())
}

func TestNow(t *testing.T) {
	s := Now()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestStatusRank(t *testing.T) {
	assert.Less(t, StatusNotStarted.Rank(), StatusInProgress.Rank())
	assert.Less(t, StatusInProgress.Rank(), StatusDone.Rank())
	assert.Equal(t, 3, Status("autre").Rank())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDone.Valid())
	assert.False(t, Status("finished").Valid())
}

func TestInternFullName(t *testing.T) {
	in := Intern{FirstName: "Marie", LastName: "Dupont"}
	assert.Equal(t, "Marie Dupont", in.FullName())
}
