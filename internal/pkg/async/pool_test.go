package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/pkg/async"
)

func TestExecuteCollectsAllResults(t *testing.T) {
	pool := async.NewPool(3)

	results := pool.Execute(context.Background(), []async.Task{
		{Name: "a", Execute: func() (interface{}, error) { return 1, nil }},
		{Name: "b", Execute: func() (interface{}, error) { return 2, nil }},
		{Name: "c", Execute: func() (interface{}, error) { return nil, errors.New("boom") }},
	})

	require.Len(t, results, 3)
	assert.Equal(t, 1, results["a"].Data)
	assert.Equal(t, 2, results["b"].Data)
	assert.Error(t, results["c"].Err)
}

func TestExecuteIsReusable(t *testing.T) {
	pool := async.NewPool(2)

	for i := 0; i < 3; i++ {
		results := pool.Execute(context.Background(), []async.Task{
			{Name: "only", Execute: func() (interface{}, error) { return i, nil }},
		})
		require.Len(t, results, 1)
		assert.Equal(t, i, results["only"].Data)
	}
}

func TestExecuteReturnsPartialOnCancellation(t *testing.T) {
	pool := async.NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	block := make(chan struct{})
	defer close(block)

	done := make(chan map[string]async.Result, 1)
	go func() {
		done <- pool.Execute(ctx, []async.Task{
			{Name: "stuck", Execute: func() (interface{}, error) { <-block; return nil, nil }},
			{Name: "queued", Execute: func() (interface{}, error) { return nil, nil }},
		})
	}()

	cancel()

	select {
	case results := <-done:
		assert.NotContains(t, results, "queued")
	case <-time.After(2 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}
