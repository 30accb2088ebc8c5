// Package content defines the block model shared by storage, the HTTP client and the editor.
package content

import (
	"errors"
	"fmt"
	"strings"
)

// BlockType identifies how a block's content is interpreted.
type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeHeading BlockType = "heading"
	BlockTypeImage   BlockType = "image"
	BlockTypeVideo   BlockType = "video"
)

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrBlockIDMissing   = errors.New("block id is required")
	ErrDuplicateBlockID = errors.New("duplicate block id")
)

// BlockTypes lists the closed set of block kinds in display order.
func BlockTypes() []BlockType {
	return []BlockType{BlockTypeText, BlockTypeHeading, BlockTypeImage, BlockTypeVideo}
}

// ParseBlockType resolves a raw type name, ignoring case and surrounding spaces.
func ParseBlockType(raw string) (BlockType, error) {
	t := BlockType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, raw)
	}
	return t, nil
}

// Valid reports whether t belongs to the closed set.
func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeText, BlockTypeHeading, BlockTypeImage, BlockTypeVideo:
		return true
	default:
		return false
	}
}

// Block is one renderable unit of page content.
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Content string    `json:"content"`
}

// Text returns the literal payload of text and heading blocks.
func (b Block) Text() (string, bool) {
	if b.Type == BlockTypeText || b.Type == BlockTypeHeading {
		return b.Content, true
	}
	return "", false
}

// ImageURL returns the image source of an image block.
func (b Block) ImageURL() (string, bool) {
	if b.Type == BlockTypeImage {
		return strings.TrimSpace(b.Content), true
	}
	return "", false
}

// VideoURL returns the embeddable URL of a video block.
func (b Block) VideoURL() (string, bool) {
	if b.Type == BlockTypeVideo {
		return strings.TrimSpace(b.Content), true
	}
	return "", false
}

// ValidateBlocks checks the shape of a content list: every block needs an id
// unique within the list and a known type. Content is not inspected.
func ValidateBlocks(blocks []Block) error {
	seen := make(map[string]struct{}, len(blocks))
	for i, block := range blocks {
		id := strings.TrimSpace(block.ID)
		if id == "" {
			return fmt.Errorf("block %d: %w", i, ErrBlockIDMissing)
		}
		if !block.Type.Valid() {
			return fmt.Errorf("block %q: %w: %q", id, ErrUnknownBlockType, block.Type)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("block %q: %w", id, ErrDuplicateBlockID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// CloneBlocks returns a copy of blocks that never aliases the input. A nil
// input yields an empty, non-nil slice.
func CloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
