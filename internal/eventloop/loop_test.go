package eventloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmpty(t *testing.T) {
	l := New()
	require.NoError(t, l.Run(context.Background()))
}

func TestPostOrder(t *testing.T) {
	l := New()

	var order []int
	for i := 0; i < 5; i++ {
		l.Post(func() { order = append(order, i) })
	}
	l.Post(func() {
		l.Post(func() { order = append(order, 99) })
	})

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 99}, order)
}

func TestAfterVirtualClock(t *testing.T) {
	start := time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(WithStartTime(start))

	var order []string
	var firedAt []time.Duration
	record := func(name string) func() {
		return func() {
			order = append(order, name)
			firedAt = append(firedAt, l.Now().Sub(start))
		}
	}

	l.After(200*time.Millisecond, record("late"))
	l.After(50*time.Millisecond, record("early"))
	l.Post(record("now"))

	began := time.Now()
	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, []string{"now", "early", "late"}, order)
	assert.Equal(t, []time.Duration{0, 50 * time.Millisecond, 200 * time.Millisecond}, firedAt)
	assert.Less(t, time.Since(began), 150*time.Millisecond, "virtual clock must not sleep")
}

func TestAfterRealTime(t *testing.T) {
	l := New(WithRealTime())

	fired := false
	began := time.Now()
	l.After(20*time.Millisecond, func() { fired = true })

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, fired)
	assert.GreaterOrEqual(t, time.Since(began), 20*time.Millisecond)
}

func TestHoldKeepsRunning(t *testing.T) {
	l := New()
	release := l.Hold()

	done := false
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Post(func() { done = true })
		release()
		release()
	}()

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, done)

	tasks, holds := l.Pending()
	assert.Equal(t, 0, tasks)
	assert.Equal(t, 0, holds)
}

func TestHoldNeverReleased(t *testing.T) {
	l := New()
	l.Hold()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, holds := l.Pending()
	assert.Equal(t, 1, holds)
}

func TestRunCanceled(t *testing.T) {
	l := New()
	ran := false
	l.Post(func() { ran = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.False(t, ran)
}
