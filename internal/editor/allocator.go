package editor

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/skillbanto/internal/content"
)

// IDAllocator hands out block ids.
type IDAllocator interface {
	NextID() string
}

// UUIDAllocator generates random UUIDv4 ids.
type UUIDAllocator struct{}

func (UUIDAllocator) NextID() string {
	return uuid.NewString()
}

const sequencePrefix = "block-"

// SequenceAllocator yields block-1, block-2, ... It is not safe for concurrent use.
type SequenceAllocator struct {
	next int
}

// NewSequenceAllocator starts the sequence after the highest block-N id in existing.
func NewSequenceAllocator(existing []content.Block) *SequenceAllocator {
	s := &SequenceAllocator{}
	s.Observe(existing)
	return s
}

// Observe advances the sequence past any block-N id in blocks.
func (s *SequenceAllocator) Observe(blocks []content.Block) {
	for _, block := range blocks {
		raw, ok := strings.CutPrefix(block.ID, sequencePrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil && n > s.next {
			s.next = n
		}
	}
}

func (s *SequenceAllocator) NextID() string {
	s.next++
	return sequencePrefix + strconv.Itoa(s.next)
}
