package buddy

import (
	"sync"

	"github.com/nicolagi/buddy/kv"
	log "github.com/sirupsen/logrus"
)

// writer persists snapshots of the task list in the background, in the order they were enqueued. Every
// snapshot is written; there is no coalescing and failed writes are logged and dropped. In synchronous
// mode (see WithSyncWrites) enqueue writes before returning and no goroutine is started.
type writer struct {
	storage kv.Storage
	key     string
	sync    bool

	mu      sync.Mutex
	cond    *sync.Cond
	queue   [][]byte
	writing bool
	closed  bool
	done    chan struct{}
}

func newWriter(storage kv.Storage, key string, synchronous bool) *writer {
	w := &writer{
		storage: storage,
		key:     key,
		sync:    synchronous,
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	if synchronous {
		close(w.done)
	} else {
		go w.loop()
	}
	return w
}

// enqueue schedules a write of b and returns immediately. It reports false if the writer is closed.
func (w *writer) enqueue(b []byte) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	if w.sync {
		w.mu.Unlock()
		w.write(b)
		return true
	}
	w.queue = append(w.queue, b)
	w.cond.Broadcast()
	w.mu.Unlock()
	return true
}

func (w *writer) loop() {
	defer close(w.done)
	w.mu.Lock()
	for {
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		b := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.writing = true
		w.mu.Unlock()

		w.write(b)

		w.mu.Lock()
		w.writing = false
		w.cond.Broadcast()
	}
}

func (w *writer) write(b []byte) {
	if err := w.storage.Set(w.key, b); err != nil {
		log.WithFields(log.Fields{
			"key":   w.key,
			"bytes": len(b),
			"cause": err,
		}).Warning("Could not persist tasks, in-memory list remains authoritative")
	}
}

// flush waits until every write enqueued so far has been attempted.
func (w *writer) flush() {
	w.mu.Lock()
	for len(w.queue) > 0 || w.writing {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

// close drains the queue and stops the background goroutine. It is safe to call more than once.
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}
