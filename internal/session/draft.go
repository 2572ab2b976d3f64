package session

import "github.com/smartsight-ai/sightchat/internal/domain"

// Draft is the mutable pre-send state: the text being typed plus the ordered
// list of acquired-but-unsent images. A Draft is created empty and cleared
// atomically at send time.
//
// Draft is not safe for concurrent use; the Controller serializes access.
type Draft struct {
	text    string
	pending []domain.ImageData
}

func (d *Draft) SetText(text string) {
	d.text = text
}

func (d *Draft) Text() string {
	return d.text
}

// Append adds a batch of acquired images in order.
func (d *Draft) Append(images ...domain.ImageData) {
	d.pending = append(d.pending, images...)
}

// Remove drops the pending image at index i. Other images keep their relative
// order and identity. Returns false for an out-of-range index.
func (d *Draft) Remove(i int) bool {
	if i < 0 || i >= len(d.pending) {
		return false
	}
	d.pending = append(d.pending[:i], d.pending[i+1:]...)
	return true
}

// Pending returns a copy of the pending image list.
func (d *Draft) Pending() []domain.ImageData {
	out := make([]domain.ImageData, len(d.pending))
	copy(out, d.pending)
	return out
}

// Empty reports whether there is nothing to send.
func (d *Draft) Empty() bool {
	return d.text == "" && len(d.pending) == 0
}

// take returns the draft contents and resets both fields together, so the
// draft is ready for the next input before any backend call resolves.
func (d *Draft) take() (string, []domain.ImageData) {
	text, pending := d.text, d.pending
	d.text = ""
	d.pending = nil
	return text, pending
}
