package editor

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/skillbanto/internal/content"
)

func ids(blocks []content.Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ID)
	}
	return out
}

func expectIDs(t *testing.T, blocks []content.Block, want ...string) {
	t.Helper()
	if got := ids(blocks); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func sampleBlocks() []content.Block {
	return []content.Block{
		{ID: "a", Type: content.BlockTypeHeading, Content: "Title"},
		{ID: "b", Type: content.BlockTypeText, Content: "Body"},
		{ID: "c", Type: content.BlockTypeImage, Content: "https://example.com/x.png"},
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := sampleBlocks()
	e := New(in, nil)

	in[0].Content = "changed"
	block, ok := e.Block("a")
	if !ok || block.Content != "Title" {
		t.Fatalf("editor shares the input slice: %+v", block)
	}

	out := e.Blocks()
	out[1].Content = "also changed"
	if block, _ := e.Block("b"); block.Content != "Body" {
		t.Fatalf("Blocks leaks internal state: %+v", block)
	}
}

func TestNewWithNilBlocks(t *testing.T) {
	e := New(nil, nil)
	if e.Len() != 0 {
		t.Fatalf("expected empty editor, got %d blocks", e.Len())
	}
	if e.Blocks() == nil {
		t.Fatal("expected non-nil block list")
	}
}

func TestAddAppendsDefaultContent(t *testing.T) {
	for _, bt := range content.BlockTypes() {
		t.Run(string(bt), func(t *testing.T) {
			e := New(sampleBlocks(), NewSequenceAllocator(nil))
			block, err := e.Add(bt)
			if err != nil {
				t.Fatalf("Add returned error: %v", err)
			}

			if e.Len() != 4 || e.Index(block.ID) != 3 {
				t.Fatalf("expected block appended at index 3, got len=%d index=%d", e.Len(), e.Index(block.ID))
			}
			if block.Type != bt || block.Content != DefaultContent(bt) || block.ID == "" {
				t.Fatalf("unexpected block %+v", block)
			}
			expectIDs(t, e.Blocks()[:3], "a", "b", "c")
		})
	}
}

func TestAddRejectsUnknownType(t *testing.T) {
	e := New(sampleBlocks(), nil)
	if _, err := e.Add(content.BlockType("quote")); !errors.Is(err, content.ErrUnknownBlockType) {
		t.Fatalf("expected ErrUnknownBlockType, got %v", err)
	}
	if e.Len() != 3 {
		t.Fatalf("expected list to be unchanged, got %d blocks", e.Len())
	}
}

func TestAddProducesUniqueIDs(t *testing.T) {
	e := New(nil, nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		block, err := e.Add(content.BlockTypeText)
		if err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
		if seen[block.ID] {
			t.Fatalf("duplicate id %s", block.ID)
		}
		seen[block.ID] = true
	}
	if err := content.ValidateBlocks(e.Blocks()); err != nil {
		t.Fatalf("generated list is invalid: %v", err)
	}
}

type fixedAllocator struct {
	ids []string
	i   int
}

func (f *fixedAllocator) NextID() string {
	id := f.ids[f.i]
	f.i++
	return id
}

func TestAddSkipsCollidingIDs(t *testing.T) {
	alloc := &fixedAllocator{ids: []string{"a", "", "b", "fresh"}}
	e := New(sampleBlocks(), alloc)

	block, err := e.Add(content.BlockTypeHeading)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if block.ID != "fresh" {
		t.Fatalf("expected colliding ids to be skipped, got %q", block.ID)
	}
}

func TestSequenceAllocatorContinuesAfterExisting(t *testing.T) {
	e := New([]content.Block{
		{ID: "block-7", Type: content.BlockTypeText, Content: "x"},
		{ID: "block-2", Type: content.BlockTypeText, Content: "y"},
		{ID: "other", Type: content.BlockTypeText, Content: "z"},
	}, NewSequenceAllocator(nil))

	block, err := e.Add(content.BlockTypeText)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if block.ID != "block-8" {
		t.Fatalf("expected block-8, got %q", block.ID)
	}
}

func TestUpdate(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.Update("b", "New body")

	blocks := e.Blocks()
	if blocks[1].Content != "New body" || blocks[1].Type != content.BlockTypeText {
		t.Fatalf("unexpected block after update: %+v", blocks[1])
	}
	expectIDs(t, blocks, "a", "b", "c")
}

func TestUpdateWithSameContentIsNoop(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.Update("b", "Body")
	if !reflect.DeepEqual(e.Blocks(), sampleBlocks()) {
		t.Fatalf("unexpected blocks %+v", e.Blocks())
	}
}

func TestUnknownIDIsIgnored(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.Update("missing", "x")
	e.Delete("missing")
	e.MoveUp("missing")
	e.MoveDown("missing")
	if !reflect.DeepEqual(e.Blocks(), sampleBlocks()) {
		t.Fatalf("unknown ids must not change the list, got %+v", e.Blocks())
	}
}

func TestDelete(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.Delete("b")
	expectIDs(t, e.Blocks(), "a", "c")
	if e.Index("b") != -1 {
		t.Fatal("deleted block is still indexed")
	}
}

func TestDeleteDropsDraft(t *testing.T) {
	e := New(sampleBlocks(), nil)
	if _, ok := e.BeginEdit("b"); !ok {
		t.Fatal("BeginEdit failed")
	}

	e.Delete("b")
	if e.IsEditing("b") {
		t.Fatal("deleted block is still in edit mode")
	}
}

func TestMoveUp(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.MoveUp("c")
	expectIDs(t, e.Blocks(), "a", "c", "b")

	e.MoveUp("a")
	expectIDs(t, e.Blocks(), "a", "c", "b")
}

func TestMoveDown(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.MoveDown("a")
	expectIDs(t, e.Blocks(), "b", "a", "c")

	e.MoveDown("c")
	expectIDs(t, e.Blocks(), "b", "a", "c")
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	e := New(sampleBlocks(), nil)
	e.MoveUp("b")
	e.MoveDown("b")
	if !reflect.DeepEqual(e.Blocks(), sampleBlocks()) {
		t.Fatalf("expected original order, got %+v", e.Blocks())
	}
}

func TestEditConfirm(t *testing.T) {
	e := New(sampleBlocks(), nil)

	draft, ok := e.BeginEdit("a")
	if !ok || draft != "Title" || !e.IsEditing("a") {
		t.Fatalf("unexpected edit state: draft=%q ok=%v", draft, ok)
	}

	if !e.SetDraft("a", "Our Plans") {
		t.Fatal("SetDraft failed")
	}
	if block, _ := e.Block("a"); block.Content != "Title" {
		t.Fatalf("draft leaked into the block: %q", block.Content)
	}

	if !e.ConfirmEdit("a") {
		t.Fatal("ConfirmEdit failed")
	}
	if block, _ := e.Block("a"); block.Content != "Our Plans" {
		t.Fatalf("expected confirmed content, got %q", block.Content)
	}
	if e.IsEditing("a") {
		t.Fatal("block still in edit mode after confirm")
	}
}

func TestEditCancel(t *testing.T) {
	e := New(sampleBlocks(), nil)
	_, _ = e.BeginEdit("a")
	e.SetDraft("a", "discarded")

	if !e.CancelEdit("a") {
		t.Fatal("CancelEdit failed")
	}
	if block, _ := e.Block("a"); block.Content != "Title" {
		t.Fatalf("cancel must keep the content, got %q", block.Content)
	}
	if e.IsEditing("a") {
		t.Fatal("block still in edit mode after cancel")
	}
}

func TestBeginEditKeepsPendingDraft(t *testing.T) {
	e := New(sampleBlocks(), nil)
	_, _ = e.BeginEdit("a")
	e.SetDraft("a", "pending")

	if draft, ok := e.BeginEdit("a"); !ok || draft != "pending" {
		t.Fatalf("expected pending draft, got %q (ok=%v)", draft, ok)
	}
}

func TestEditWithoutBeginIsRejected(t *testing.T) {
	e := New(sampleBlocks(), nil)
	if e.SetDraft("a", "x") || e.ConfirmEdit("a") || e.CancelEdit("a") {
		t.Fatal("edit operations must fail outside edit mode")
	}
	if _, ok := e.BeginEdit("missing"); ok {
		t.Fatal("BeginEdit on an unknown id must fail")
	}
	if _, ok := e.Draft("a"); ok {
		t.Fatal("expected no draft")
	}
}

func TestDefaultContent(t *testing.T) {
	tests := map[content.BlockType]string{
		content.BlockTypeText:    "Click to edit this text",
		content.BlockTypeHeading: "New Heading",
		content.BlockTypeImage:   "https://placehold.co/800x400",
		content.BlockTypeVideo:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"nope":                   "",
	}
	for bt, want := range tests {
		if got := DefaultContent(bt); got != want {
			t.Errorf("DefaultContent(%q) = %q, want %q", bt, got, want)
		}
	}
}

// TestRandomSequencesMatchModel replays random add/delete/move sequences
// against a plain slice and checks that no block is gained or lost.
func TestRandomSequencesMatchModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := content.BlockTypes()

	for run := 0; run < 50; run++ {
		e := New(nil, NewSequenceAllocator(nil))
		model := []string{}

		for step := 0; step < 200; step++ {
			pick := func() string {
				if len(model) == 0 || rng.Intn(10) == 0 {
					return "missing"
				}
				return model[rng.Intn(len(model))]
			}

			switch rng.Intn(4) {
			case 0:
				block, err := e.Add(types[rng.Intn(len(types))])
				if err != nil {
					t.Fatalf("Add returned error: %v", err)
				}
				model = append(model, block.ID)
			case 1:
				id := pick()
				e.Delete(id)
				for i, m := range model {
					if m == id {
						model = append(model[:i], model[i+1:]...)
						break
					}
				}
			case 2:
				id := pick()
				e.MoveUp(id)
				for i, m := range model {
					if m == id && i > 0 {
						model[i-1], model[i] = model[i], model[i-1]
						break
					}
				}
			case 3:
				id := pick()
				e.MoveDown(id)
				for i, m := range model {
					if m == id && i < len(model)-1 {
						model[i], model[i+1] = model[i+1], model[i]
						break
					}
				}
			}

			if got := ids(e.Blocks()); !reflect.DeepEqual(got, model) {
				t.Fatalf("run %d step %d: expected %v, got %v", run, step, model, got)
			}
		}
	}
}
