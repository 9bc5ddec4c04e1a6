package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunnerWait(t *testing.T) {
	errBoom := errors.New("boom")
	r := NewRunner().Go(
		RunFunc(func(context.Context) error { return nil }),
		NamedRun("canceled", RunFunc(func(context.Context) error { return context.Canceled })),
		RunFunc(func(context.Context) error { return errBoom }),
	)
	err := r.Wait()
	require.ErrorIs(t, err, errBoom)
	require.EqualError(t, err, "boom")
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	e1, e2 := errors.New("a"), errors.New("b")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.ErrorIs(t, err, e2)
	require.EqualError(t, err, "multiple errors:\na\nb")
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	unblock := make(chan struct{})
	closed := 0
	closer := closerFunc(func() error {
		closed++
		close(unblock)
		return nil
	})
	cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, closed)

	closed = 0
	unblock = make(chan struct{})
	err = RunWithContextCloser(context.Background(), closer, func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, closed)
}
