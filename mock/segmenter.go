package mock

import "github.com/fwojciec/nexus"

var _ nexus.Segmenter = (*Segmenter)(nil)

// Segmenter is a mock implementation of nexus.Segmenter.
type Segmenter struct {
	SegmentFn func(html string) ([]nexus.ContentBlock, error)
}

func (s *Segmenter) Segment(html string) ([]nexus.ContentBlock, error) {
	return s.SegmentFn(html)
}
