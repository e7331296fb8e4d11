// Package cursor provides forward-only, single-pass traversal of the images
// listed in an annotation.
//
// A Cursor is a snapshot: it copies the image paths when it is created and
// never sees later changes to the table. It moves one step per Next call and,
// once past the last image, stays exhausted. There is no rewind; open a new
// cursor to start over.
//
// A Cursor is meant for a single consumer and is not safe for concurrent use.
package cursor

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ironsheep/image-dataset-tools/internal/dataset"
)

var (
	// ErrIteratorInit wraps every failure to create a cursor.
	ErrIteratorInit = errors.New("the image iterator could not be created")

	// ErrNoImages reports an annotation without any image rows.
	ErrNoImages = errors.New("the annotation lists no images")
)

// State is the position of a cursor in its lifecycle.
type State int

const (
	// Ready means Next may still return an item.
	Ready State = iota

	// Exhausted means Next has reported the end and will keep doing so.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Item is one image returned by Next.
type Item struct {
	// Index is the 0-based position of the item in the cursor.
	Index int `json:"index"`

	// Row is the 0-based annotation row the item was read from.
	Row int `json:"row"`

	Path         string `json:"path"`
	RelativePath string `json:"relative_path,omitempty"`
}

// Cursor walks the images of an annotation one at a time.
type Cursor struct {
	items     []Item
	pos       int
	exhausted bool
}

// Open loads the annotation at path and returns a cursor over its images.
func Open(path string) (*Cursor, error) {
	t, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIteratorInit, err)
	}
	return New(t)
}

// New returns a cursor over the image paths of t, in table order.
func New(t *dataset.Table) (*Cursor, error) {
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrIteratorInit, ErrNoImages)
	}

	paths := t.Paths()
	relative, hasRelative := t.Text(dataset.ColumnRelativePath)

	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Index: i, Row: t.Origin(i), Path: p}
		if hasRelative {
			items[i].RelativePath = relative[i]
		}
	}
	return &Cursor{items: items}, nil
}

// Next returns the next image and true, or a zero Item and false once every
// image has been returned. The false result is the normal end of the
// sequence, not a failure, and repeats on every later call.
func (c *Cursor) Next() (Item, bool) {
	if c.exhausted {
		return Item{}, false
	}
	if c.pos >= len(c.items) {
		c.exhausted = true
		return Item{}, false
	}
	item := c.items[c.pos]
	c.pos++
	return item, true
}

// Items returns an iterator that drains the cursor from its current position.
//
//	for item := range cur.Items() {
//	    show(item.Path)
//	}
func (c *Cursor) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for {
			item, ok := c.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// State reports whether the cursor is Ready or Exhausted.
func (c *Cursor) State() State {
	if c.exhausted {
		return Exhausted
	}
	return Ready
}

// Position is the index of the item the next call to Next will return.
func (c *Cursor) Position() int {
	return c.pos
}

// Len is the number of images in the cursor.
func (c *Cursor) Len() int {
	return len(c.items)
}

// Remaining is the number of images Next has not returned yet.
func (c *Cursor) Remaining() int {
	return len(c.items) - c.pos
}
