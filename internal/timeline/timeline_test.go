package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleNowRunsInOrder(t *testing.T) {
	tl := New()
	go tl.Run()
	defer tl.Stop()

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		tl.ScheduleNow(func() {
			order = append(order, i)
			if i == 4 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tasks")
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestScheduleInRunsAfterDelay(t *testing.T) {
	tl := New()
	go tl.Run()
	defer tl.Stop()

	start := time.Now()
	done := make(chan time.Time, 1)
	tl.ScheduleIn(50*time.Millisecond, func() {
		done <- time.Now()
	})

	select {
	case fired := <-done:
		require.True(t, fired.Sub(start) >= 40*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delayed task")
	}
}

func TestStopReturnsAfterRun(t *testing.T) {
	tl := New()
	go tl.Run()
	tl.Stop()
}
