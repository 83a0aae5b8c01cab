package frame

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

type Scheduler interface {
	// Request arranges for fn to run on the next frame.
	Request(fn func()) Handle
	// Cancel drops a pending request. Cancelling an unknown or already
	// fired handle is a no-op.
	Cancel(h Handle)
}

// Queue is a Scheduler driven by the host's refresh. It is not safe for
// concurrent use; the host must call Request, Cancel and Flush from the
// goroutine that owns the animation.
type Queue struct {
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]func())}
}

func (q *Queue) Request(fn func()) Handle {
	q.next++
	h := q.next
	q.pending[h] = fn
	q.order = append(q.order, h)
	return h
}

func (q *Queue) Cancel(h Handle) {
	delete(q.pending, h)
}

// Flush runs every callback requested before the call began, in request
// order, and returns how many ran. Callbacks requested while flushing wait
// for the next Flush; a callback cancelled mid-flush does not run.
func (q *Queue) Flush() int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, h := range batch {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn()
		ran++
	}
	if len(q.order) == 0 && len(q.pending) == 0 {
		q.order = batch[:0]
	}
	return ran
}

func (q *Queue) Pending() int { return len(q.pending) }
