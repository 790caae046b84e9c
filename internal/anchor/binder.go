package anchor

import (
	"sync"

	"arplace/internal/engine"
)

// Binder replaces an object's session anchor whenever the object moves.
//
// The old anchor is always removed before the new one is added, so the
// session never holds two anchors for the same object. Calls for the same
// object are serialized; calls for different objects do not block each other.
//
// A Binder lives as long as its session and serves a bounded set of objects.
// Per-object locks are kept until the Binder is dropped, Release included.
type Binder struct {
	Session Session

	// OnRebound fires after an object's anchor has been replaced.
	OnRebound engine.EventWithArg[*engine.VirtualObject]

	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func NewBinder(session Session) *Binder {
	return &Binder{
		Session: session,
		locks:   make(map[uint64]*sync.Mutex),
	}
}

func (b *Binder) lockFor(obj *engine.VirtualObject) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locks == nil {
		b.locks = make(map[uint64]*sync.Mutex)
	}
	l, ok := b.locks[obj.UID]
	if !ok {
		l = &sync.Mutex{}
		b.locks[obj.UID] = l
	}
	return l
}

// Rebind anchors obj at its current world transform, releasing whatever
// anchor it held before.
func (b *Binder) Rebind(obj *engine.VirtualObject) {
	l := b.lockFor(obj)
	l.Lock()
	if !obj.Anchor.IsZero() {
		b.Session.RemoveAnchor(obj.Anchor)
	}
	obj.Anchor = b.Session.AddAnchor(obj.WorldTransform())
	l.Unlock()

	b.OnRebound.Invoke(obj)
}

// Release removes obj's anchor from the session and clears the binding.
// Use it when the object leaves the scene.
func (b *Binder) Release(obj *engine.VirtualObject) {
	l := b.lockFor(obj)
	l.Lock()
	defer l.Unlock()

	if !obj.Anchor.IsZero() {
		b.Session.RemoveAnchor(obj.Anchor)
		obj.Anchor = engine.NoAnchor
	}
}
