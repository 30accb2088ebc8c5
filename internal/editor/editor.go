// Package editor holds an editable, in-memory copy of a page's blocks and the
// protocol that writes it back to the page API.
package editor

import (
	"fmt"

	"github.com/skillbanto/internal/content"
)

// DefaultContent returns the placeholder payload of a freshly added block.
func DefaultContent(t content.BlockType) string {
	switch t {
	case content.BlockTypeText:
		return "Click to edit this text"
	case content.BlockTypeHeading:
		return "New Heading"
	case content.BlockTypeImage:
		return "https://placehold.co/800x400"
	case content.BlockTypeVideo:
		return "https://www.youtube.com/embed/dQw4w9WgXcQ"
	default:
		return ""
	}
}

// Editor is the block list state machine. Every mutation is local; unknown ids
// are silently ignored. An Editor is not safe for concurrent use.
type Editor struct {
	blocks []content.Block
	drafts map[string]string
	ids    IDAllocator
}

// New returns an Editor seeded with a copy of blocks. A nil allocator uses UUIDs.
func New(blocks []content.Block, ids IDAllocator) *Editor {
	if ids == nil {
		ids = UUIDAllocator{}
	}
	if seq, ok := ids.(*SequenceAllocator); ok {
		seq.Observe(blocks)
	}
	return &Editor{
		blocks: content.CloneBlocks(blocks),
		drafts: make(map[string]string),
		ids:    ids,
	}
}

// Blocks returns a copy of the current list in render order.
func (e *Editor) Blocks() []content.Block {
	return content.CloneBlocks(e.blocks)
}

func (e *Editor) Len() int {
	return len(e.blocks)
}

// Index returns the position of id, or -1.
func (e *Editor) Index(id string) int {
	for i, block := range e.blocks {
		if block.ID == id {
			return i
		}
	}
	return -1
}

// Block returns the block with id.
func (e *Editor) Block(id string) (content.Block, bool) {
	if i := e.Index(id); i >= 0 {
		return e.blocks[i], true
	}
	return content.Block{}, false
}

// Add appends a block of type t with its default content.
func (e *Editor) Add(t content.BlockType) (content.Block, error) {
	if !t.Valid() {
		return content.Block{}, fmt.Errorf("%w: %q", content.ErrUnknownBlockType, t)
	}

	id := e.ids.NextID()
	for id == "" || e.Index(id) >= 0 {
		id = e.ids.NextID()
	}

	block := content.Block{ID: id, Type: t, Content: DefaultContent(t)}
	e.blocks = append(e.blocks, block)
	return block, nil
}

// Update replaces the content of the block with id.
func (e *Editor) Update(id, text string) {
	if i := e.Index(id); i >= 0 {
		e.blocks[i].Content = text
	}
}

// Delete removes the block with id, keeping the others in order.
func (e *Editor) Delete(id string) {
	i := e.Index(id)
	if i < 0 {
		return
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	delete(e.drafts, id)
}

// MoveUp swaps the block with its predecessor. The first block stays put.
func (e *Editor) MoveUp(id string) {
	if i := e.Index(id); i > 0 {
		e.blocks[i-1], e.blocks[i] = e.blocks[i], e.blocks[i-1]
	}
}

// MoveDown swaps the block with its successor. The last block stays put.
func (e *Editor) MoveDown(id string) {
	if i := e.Index(id); i >= 0 && i < len(e.blocks)-1 {
		e.blocks[i], e.blocks[i+1] = e.blocks[i+1], e.blocks[i]
	}
}

// BeginEdit switches a block to edit mode with a draft equal to its content.
// Calling it on a block already in edit mode keeps the pending draft.
func (e *Editor) BeginEdit(id string) (string, bool) {
	block, ok := e.Block(id)
	if !ok {
		return "", false
	}
	if draft, editing := e.drafts[id]; editing {
		return draft, true
	}
	e.drafts[id] = block.Content
	return block.Content, true
}

// SetDraft changes the pending draft of a block in edit mode.
func (e *Editor) SetDraft(id, text string) bool {
	if _, editing := e.drafts[id]; !editing {
		return false
	}
	e.drafts[id] = text
	return true
}

// ConfirmEdit writes the draft back and leaves edit mode.
func (e *Editor) ConfirmEdit(id string) bool {
	draft, editing := e.drafts[id]
	if !editing {
		return false
	}
	delete(e.drafts, id)
	e.Update(id, draft)
	return true
}

// CancelEdit drops the draft without touching the block.
func (e *Editor) CancelEdit(id string) bool {
	if _, editing := e.drafts[id]; !editing {
		return false
	}
	delete(e.drafts, id)
	return true
}

func (e *Editor) IsEditing(id string) bool {
	_, editing := e.drafts[id]
	return editing
}

// Draft returns the pending draft of a block in edit mode.
func (e *Editor) Draft(id string) (string, bool) {
	draft, editing := e.drafts[id]
	return draft, editing
}
