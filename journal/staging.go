package journal

// Staging accumulates the images picked for a multi-image entry before
// upload. Removal is by index and preserves the order of the remaining
// images, so image1..imageN numbering always reflects pick order.
//
// Staging is not safe for concurrent use; each capture flow owns one.
type Staging struct {
	images []string
}

// Add appends a base64 image data URL to the staged list.
func (s *Staging) Add(dataURL string) {
	s.images = append(s.images, dataURL)
}

// RemoveAt drops the staged image at index i. Out-of-range indexes are
// ignored.
func (s *Staging) RemoveAt(i int) {
	if i < 0 || i >= len(s.images) {
		return
	}
	s.images = append(s.images[:i], s.images[i+1:]...)
}

// Images returns the staged data URLs in pick order. The returned slice is a
// copy; mutating it does not affect the staging area.
func (s *Staging) Images() []string {
	out := make([]string, len(s.images))
	copy(out, s.images)
	return out
}

// Len reports how many images are staged.
func (s *Staging) Len() int { return len(s.images) }

// Clear empties the staging area.
func (s *Staging) Clear() { s.images = nil }
