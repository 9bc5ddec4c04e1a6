package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	val int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func TestLoopStepByPriority(t *testing.T) {
	var order []string
	loop := NewLoop()
	loop.AddController(PrLvAcuate, ControlFunc(func(cc ControlContext) error {
		order = append(order, "acuate")
		require.Equal(t, PrLvAcuate, cc.PriorityLevel())
		return nil
	}))
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		order = append(order, "control")
		return nil
	}))
	loop.Step(context.Background())
	require.Equal(t, []string{"control", "acuate"}, order)
}

func TestLoopMessages(t *testing.T) {
	var seen, leftover []int
	loop := NewLoop()
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			msg := mctx.CurrentMessage().(*testMsg)
			seen = append(seen, msg.val)
			if msg.val%2 == 0 {
				mctx.MessageTaken()
				mctx.AddMessages(&testMsg{val: msg.val * 10})
			}
		}))
		return nil
	}))
	loop.AddController(PrLvIdle, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			leftover = append(leftover, mctx.CurrentMessage().(*testMsg).val)
			mctx.MessageTaken()
		}))
		return nil
	}))
	for n := 1; n <= 4; n++ {
		loop.PostMessage(&testMsg{val: n})
	}
	loop.Step(context.Background())
	require.Equal(t, []int{1, 2, 3, 4}, seen)
	require.Equal(t, []int{1, 3, 20, 40}, leftover)

	// messages are consumed by the iteration.
	seen, leftover = nil, nil
	loop.Step(context.Background())
	require.Empty(t, seen)
	require.Empty(t, leftover)
}

func TestLoopStopProcessing(t *testing.T) {
	var first, second []int
	loop := NewLoop()
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			first = append(first, mctx.CurrentMessage().(*testMsg).val)
			mctx.MessageTaken()
			mctx.StopProcessing()
		}))
		return nil
	}))
	loop.AddController(PrLvIdle, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			second = append(second, mctx.CurrentMessage().(*testMsg).val)
		}))
		return nil
	}))
	loop.PostMessage(&testMsg{val: 1})
	loop.PostMessage(&testMsg{val: 2})
	loop.PostMessage(&testMsg{val: 3})
	loop.Step(context.Background())
	require.Equal(t, []int{1}, first)
	require.Equal(t, []int{2, 3}, second)
}

func TestLoopRunTriggered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan int, 1)
	loop := NewLoop()
	loop.Interval = time.Hour
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mctx MessageProcessingContext) {
			mctx.MessageTaken()
			got <- mctx.CurrentMessage().(*testMsg).val
		}))
		return nil
	}))
	loop.AddRunnable(RunFunc(func(ctx context.Context) error {
		ctl := LoopCtlFrom(ctx)
		ctl.PostMessage(&testMsg{val: 42})
		ctl.TriggerNext()
		<-ctx.Done()
		return ctx.Err()
	}))
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	select {
	case val := <-got:
		require.Equal(t, 42, val)
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
