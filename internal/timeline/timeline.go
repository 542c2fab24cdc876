// Package timeline is the single worker goroutine that every mutation of
// the model flows through. It generalizes the select{} loop in
// server.Run(): instead of one fixed channel plus one fixed ticker, it
// accepts arbitrary tasks submitted for "as soon as possible" or "at a
// future deadline" execution, and runs them one at a time so the
// controller and model never need their own locking.
package timeline

import (
	"container/heap"
	"time"

	"github.com/asim/chatd/internal/logging"
)

// Task is a unit of work run on the Timeline goroutine.
type Task func()

type scheduledTask struct {
	deadline time.Time
	seq      uint64 // tie-breaker so same-deadline tasks stay FIFO
	task     Task
}

type taskHeap []*scheduledTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*scheduledTask)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Timeline runs submitted tasks in submission (or deadline) order on a
// single goroutine. Tasks scheduled for "now" always run before any
// not-yet-due delayed task, mirroring the event-channel-before-ticker
// priority of a select loop that favors its event channel over its ticker.
type Timeline struct {
	now     chan Task
	delayed chan *scheduledTask
	stop    chan struct{}
	done    chan struct{}
	nextSeq uint64
	log     *logging.Logger
}

// New creates a Timeline. Call Run in its own goroutine to start draining it.
func New() *Timeline {
	return &Timeline{
		now:     make(chan Task, 256),
		delayed: make(chan *scheduledTask, 256),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     logging.Default("timeline"),
	}
}

// ScheduleNow enqueues task for immediate execution. Safe to call from any
// goroutine, including from inside another task.
func (tl *Timeline) ScheduleNow(task Task) {
	tl.now <- task
}

// ScheduleIn enqueues task to run no earlier than d from now.
func (tl *Timeline) ScheduleIn(d time.Duration, task Task) {
	tl.delayed <- &scheduledTask{deadline: time.Now().Add(d), task: task}
}

// Stop signals Run to return once the task it is running (if any) finishes,
// and blocks until it has. Tasks still queued or not yet due are not run.
func (tl *Timeline) Stop() {
	close(tl.stop)
	<-tl.done
}

// Run drains the Timeline until Stop is called. It must be run from
// exactly one goroutine; every task it executes runs on that goroutine,
// so model mutations made from inside tasks are automatically serialized.
func (tl *Timeline) Run() {
	defer close(tl.done)

	pending := &taskHeap{}
	heap.Init(pending)

	var timer *time.Timer
	var timerC <-chan time.Time

	armTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
		if pending.Len() == 0 {
			return
		}
		d := time.Until((*pending)[0].deadline)
		if d < 0 {
			d = 0
		}
		timer = time.NewTimer(d)
		timerC = timer.C
	}

	for {
		armTimer()

		select {
		case <-tl.stop:
			return

		case task := <-tl.now:
			tl.runTask(task)

		case st := <-tl.delayed:
			tl.nextSeq++
			st.seq = tl.nextSeq
			heap.Push(pending, st)

		case <-timerC:
			st := heap.Pop(pending).(*scheduledTask)
			tl.runTask(st.task)
		}
	}
}

// runTask executes task, recovering any panic so a single bad task (a
// handler bug, a hook, a future library call) cannot take down the worker
// and every other connection and the relay pump along with it. The panic is
// logged and the Timeline keeps draining.
func (tl *Timeline) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			tl.log.Printf("recovered panic in task: %v", r)
		}
	}()
	task()
}
