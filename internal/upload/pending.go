// Package upload turns user-selected files into inline image data URLs and
// stages them until the next message is sent.
package upload

import "sync"

// PendingSet is an ordered list of staged image data URLs.
type PendingSet struct {
	mu     sync.Mutex
	images []string
}

// Append adds a batch to the end of the set in one step.
func (p *PendingSet) Append(batch []string) {
	if len(batch) == 0 {
		return
	}
	p.mu.Lock()
	p.images = append(p.images, batch...)
	p.mu.Unlock()
}

// Remove drops the image at index. It reports false when index is out of range.
func (p *PendingSet) Remove(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.images) {
		return false
	}
	p.images = append(p.images[:index:index], p.images[index+1:]...)
	return true
}

// Clear empties the set.
func (p *PendingSet) Clear() {
	p.mu.Lock()
	p.images = nil
	p.mu.Unlock()
}

// Images returns a copy of the staged images.
func (p *PendingSet) Images() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.images...)
}

// Len returns the number of staged images.
func (p *PendingSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.images)
}
