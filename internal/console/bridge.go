// Package console implements the operator console: a blocking line-oriented
// REPL on its own goroutine, bridged into the bot's state-owning goroutine
// through a request/response channel. All console actions that touch live
// gateway state execute on the bot side of the bridge; the console side only
// formats results.
package console

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Verb identifies a console action executed on the bot side.
type Verb string

const (
	VerbStatus    Verb = "status"
	VerbGuilds    Verb = "guilds"
	VerbCommands  Verb = "commands"
	VerbSend      Verb = "send"
	VerbBroadcast Verb = "broadcast"
)

// ErrTimeout is returned by Submit when the bot side does not answer within
// the bridge timeout. The original design blocked forever; the timeout keeps
// a stalled bot loop from hanging the operator.
var ErrTimeout = errors.New("console: bot did not answer in time")

type result struct {
	value any
	err   error
}

// Request is one operator action waiting to be executed. It is consumed
// exactly once and resolved exactly once.
type Request struct {
	Verb Verb
	Args []string

	once sync.Once
	done chan result
}

// Resolve delivers the outcome to the waiting submitter. Only the first call
// has any effect.
func (r *Request) Resolve(value any, err error) {
	r.once.Do(func() {
		r.done <- result{value: value, err: err}
	})
}

// Bridge carries requests from the console goroutine to the bot goroutine.
type Bridge struct {
	requests chan *Request
	timeout  time.Duration
}

// NewBridge returns a bridge whose Submit calls give up after timeout.
func NewBridge(timeout time.Duration) *Bridge {
	return &Bridge{
		requests: make(chan *Request, 16),
		timeout:  timeout,
	}
}

// Requests exposes the bot-side end of the bridge.
func (b *Bridge) Requests() <-chan *Request {
	return b.requests
}

// Submit queues an action and blocks the calling goroutine until the bot
// side resolves it or the timeout fires.
func (b *Bridge) Submit(verb Verb, args []string) (any, error) {
	req := &Request{
		Verb: verb,
		Args: args,
		done: make(chan result, 1),
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case b.requests <- req:
	case <-timer.C:
		return nil, fmt.Errorf("%w (queue full)", ErrTimeout)
	}

	select {
	case res := <-req.done:
		return res.value, res.err
	case <-timer.C:
		return nil, ErrTimeout
	}
}
