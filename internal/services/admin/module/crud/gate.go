package crud

import "sync"

// Gate admits one pending mutation per session and resource.
type Gate struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{pending: map[string]struct{}{}}
}

// TryAcquire claims the slot for sessionID and resource. The returned release
// must be called when the mutation finishes. ok is false when a mutation is
// already pending.
func (g *Gate) TryAcquire(sessionID, resource string) (release func(), ok bool) {
	key := sessionID + "\x00" + resource
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; busy {
		return func() {}, false
	}
	g.pending[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.pending, key)
			g.mu.Unlock()
		})
	}, true
}
