package toast

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_Defaults(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	got := q.Show("Product added successfully", "", 0)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, SeveritySuccess, got.Severity)
	assert.True(t, got.Visible)
	assert.Equal(t, []Toast{got}, q.List())
}

func TestShow_UniqueIDsUnderBurst(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	seen := map[string]struct{}{}
	for range 1000 {
		tt := q.Show("x", SeverityInfo, time.Minute)
		_, dup := seen[tt.ID]
		require.False(t, dup, "duplicate id %s", tt.ID)
		seen[tt.ID] = struct{}{}
	}
	assert.Equal(t, 1000, q.Len())
}

func TestShow_ExpiresAfterDuration(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	short := q.Show("short", SeverityError, 20*time.Millisecond)
	long := q.Show("long", SeverityInfo, time.Minute)

	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, long.ID, list[0].ID)
	assert.NotEqual(t, short.ID, list[0].ID)
}

func TestShow_QueueDefaultDuration(t *testing.T) {
	q := NewQueue(WithDefaultDuration(10 * time.Millisecond))
	t.Cleanup(q.Close)

	q.Success("saved")
	q.Error("failed")

	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRemove(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	a := q.Show("a", SeveritySuccess, time.Minute)
	b := q.Show("b", SeverityWarning, time.Minute)
	c := q.Show("c", SeverityInfo, time.Minute)

	q.Remove(b.ID)
	q.Remove("missing")

	list := q.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)
}

func TestRemove_FirstMatchOnly(t *testing.T) {
	q := NewQueue(WithIDFunc(func() string { return "same" }))
	t.Cleanup(q.Close)

	q.Show("first", SeveritySuccess, time.Minute)
	q.Show("second", SeveritySuccess, time.Minute)

	q.Remove("same")

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Message)
}

func TestList_ReturnsCopy(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	q.Show("a", SeveritySuccess, time.Minute)
	list := q.List()
	list[0].Message = "mutated"

	assert.Equal(t, "a", q.List()[0].Message)
}

func TestClose_StopsTimers(t *testing.T) {
	q := NewQueue()
	q.Show("kept", SeverityInfo, 10*time.Millisecond)
	q.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, q.Len())
}

func TestConcurrentShowRemove(t *testing.T) {
	q := NewQueue()
	t.Cleanup(q.Close)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tt := q.Show("msg "+strconv.Itoa(i), SeverityInfo, time.Minute)
			q.Remove(tt.ID)
		}()
	}
	wg.Wait()

	assert.Zero(t, q.Len())
}
