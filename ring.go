package formz

import "sync"

// notificationRing is a thread-safe ring buffer of recent notifications.
type notificationRing struct {
	mu    sync.RWMutex
	items []Notification
	size  int
	head  int
	count int
}

// newNotificationRing creates a ring buffer with the given capacity.
// If size is 0, the ring buffer is disabled.
func newNotificationRing(size int) *notificationRing {
	if size <= 0 {
		return nil
	}
	return &notificationRing{
		items: make([]Notification, size),
		size:  size,
	}
}

// push adds a notification to the ring buffer.
func (r *notificationRing) push(n Notification) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = n
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns all notifications in the ring buffer, oldest first.
func (r *notificationRing) all() []Notification {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Notification, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.items[(start+i)%r.size]
	}
	return result
}
