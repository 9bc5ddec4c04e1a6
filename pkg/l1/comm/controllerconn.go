package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/l1"
	"github.com/robotalks/vescdrive/pkg/l1/msgs"
)

// ControllerConn provides base implementation for l1.ControllerConn using Pipe.
// Replies are matched to commands by sequence; commands without reply
// within Expiration fail with context.DeadlineExceeded.
type ControllerConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	lock     sync.Mutex
}

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// Init initializes ControllerConn with defaults.
func (c *ControllerConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements ControllerConn.
func (c *ControllerConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.seq++; c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.finish(l1.Result{Err: err})
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// AddToLoop implements LoopAdder.
func (c *ControllerConn) AddToLoop(l *fx.Loop) {
	l.Add(&c.pipe)
	l.AddController(fx.PrLvIdle, fx.ControlFunc(c.purgeExpired))
}

func (c *ControllerConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		loopCtl := fx.LoopCtlFrom(ctx)
		loopCtl.PostMessage(msg)
		loopCtl.TriggerNext()
		return nil
	}
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	// late replies of purged commands are ignored.
	if f := c.seqMap[typed.Sequence]; f != nil {
		c.complete(f, result)
	}
	return nil
}

func (c *ControllerConn) purgeExpired(cc fx.ControlContext) error {
	now := cc.Time()
	c.lock.Lock()
	defer c.lock.Unlock()
	for elem := c.commands.Front(); elem != nil; elem = c.commands.Front() {
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.complete(f, l1.Result{Err: context.DeadlineExceeded})
	}
	return nil
}

// complete must be called with lock held.
func (c *ControllerConn) complete(f *commandFuture, result l1.Result) {
	c.commands.Remove(f.elem)
	delete(c.seqMap, f.seq)
	f.finish(result)
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (f *commandFuture) finish(result l1.Result) {
	f.result <- result
	close(f.result)
}

// ResultChan implements CommandFuture.
func (f *commandFuture) ResultChan() <-chan l1.Result {
	return f.result
}
