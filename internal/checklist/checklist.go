// Package checklist owns the equipment template and the set of checked
// items. Every mutation is written through to the store before returning.
package checklist

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/cabina/internal/model"
	"github.com/idilsaglam/cabina/internal/store"
)

// Logical keys under the adapter's prefix.
const (
	TemplateKey = "template"
	CheckedKey  = "checked"
)

// ErrNotFound reports a lookup for an item that is not in the template.
var ErrNotFound = errors.New("item not found")

// Store holds the ordered template and the checked set.
// It is not safe for concurrent use.
type Store struct {
	persist *store.Adapter
	items   []model.Item
	checked map[string]struct{}
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides id generation for new items.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open loads the template and checked set from p. Unreadable data falls back
// to the seed template and an empty checked set.
func Open(p *store.Adapter, opts ...Option) *Store {
	s := &Store{persist: p, newID: timeID}
	for _, o := range opts {
		o(s)
	}

	items := store.Load(p, TemplateKey, model.DefaultTemplate())
	s.items = dedupe(items)

	ids := store.Load(p, CheckedKey, []string{})
	s.checked = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if s.Index(id) >= 0 {
			s.checked[id] = struct{}{}
		}
	}
	return s
}

// timeID returns a UUIDv7, whose leading bits are the creation time in ms.
func timeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// dedupe drops entries with a blank id or label and repeated ids.
func dedupe(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it.Label = strings.TrimSpace(it.Label)
		if it.ID == "" || it.Label == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

// Items returns a copy of the template in order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of items in the template.
func (s *Store) Len() int { return len(s.items) }

// At returns the item at position i.
func (s *Store) At(i int) (model.Item, error) {
	if i < 0 || i >= len(s.items) {
		return model.Item{}, ErrNotFound
	}
	return s.items[i], nil
}

// Index returns the position of id, or -1.
func (s *Store) Index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// IsChecked reports whether id is in the checked set.
func (s *Store) IsChecked(id string) bool {
	_, ok := s.checked[id]
	return ok
}

// Checked returns the checked ids in template order.
func (s *Store) Checked() []string {
	out := make([]string, 0, len(s.checked))
	for _, it := range s.items {
		if s.IsChecked(it.ID) {
			out = append(out, it.ID)
		}
	}
	return out
}

// Counts returns how many items are checked and the template size.
func (s *Store) Counts() (checked, total int) {
	return len(s.checked), len(s.items)
}

// Progress is the rounded percentage of checked items, 0 for an empty list.
func (s *Store) Progress() int {
	return Progress(s.Counts())
}

// AllDone reports a non-empty list with every item checked.
func (s *Store) AllDone() bool {
	c, t := s.Counts()
	return t > 0 && c == t
}

// Progress computes round(100*checked/total), 0 when total is 0.
func Progress(checked, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(checked) / float64(total)))
}

// Toggle flips id in the checked set. Unknown ids are ignored.
func (s *Store) Toggle(id string) (bool, error) {
	if s.Index(id) < 0 {
		return false, nil
	}
	if s.IsChecked(id) {
		delete(s.checked, id)
	} else {
		s.checked[id] = struct{}{}
	}
	return true, s.saveChecked()
}

// Add appends a new item. Blank labels are ignored.
func (s *Store) Add(label string) (model.Item, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.Item{}, false, nil
	}
	it := model.Item{ID: s.freshID(), Label: label}
	s.items = append(s.items, it)
	return it, true, s.saveTemplate()
}

// Insert puts it back at position i (clamped). Used to undo a delete; the
// item comes back unchecked.
func (s *Store) Insert(i int, it model.Item) (bool, error) {
	it.Label = strings.TrimSpace(it.Label)
	if it.Label == "" {
		return false, nil
	}
	if it.ID == "" || s.Index(it.ID) >= 0 {
		it.ID = s.freshID()
	}
	i = max(0, min(i, len(s.items)))
	s.items = append(s.items, model.Item{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = it
	return true, s.saveTemplate()
}

// Edit replaces the label of id in place. Blank labels and unknown ids are
// ignored.
func (s *Store) Edit(id, label string) (bool, error) {
	label = strings.TrimSpace(label)
	i := s.Index(id)
	if label == "" || i < 0 {
		return false, nil
	}
	s.items[i].Label = label
	return true, s.saveTemplate()
}

// Delete removes id from the template and from the checked set.
func (s *Store) Delete(id string) (bool, error) {
	i := s.Index(id)
	if i < 0 {
		return false, nil
	}
	wasChecked := s.IsChecked(id)
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.checked, id)
	err := s.saveTemplate()
	if wasChecked {
		err = errors.Join(err, s.saveChecked())
	}
	return true, err
}

// Reset clears every check, leaving the template as is.
func (s *Store) Reset() error {
	s.checked = map[string]struct{}{}
	return s.saveChecked()
}

// Replace swaps in a whole new template. Entries without an id, or repeating
// an earlier id, get a fresh one. Blank labels are dropped and checks for
// items that no longer exist are cleared.
func (s *Store) Replace(items []model.Item) error {
	next := make([]model.Item, 0, len(items))
	taken := map[string]bool{}
	for _, it := range items {
		if it.ID != "" {
			taken[it.ID] = true
		}
	}
	seen := map[string]bool{}
	for _, it := range items {
		it.Label = strings.TrimSpace(it.Label)
		if it.Label == "" {
			continue
		}
		if it.ID == "" || seen[it.ID] {
			it.ID = s.freshIDNotIn(taken)
			taken[it.ID] = true
		}
		seen[it.ID] = true
		next = append(next, it)
	}
	s.items = next
	pruned := false
	for id := range s.checked {
		if !seen[id] {
			delete(s.checked, id)
			pruned = true
		}
	}
	err := s.saveTemplate()
	if pruned {
		err = errors.Join(err, s.saveChecked())
	}
	return err
}

func (s *Store) freshID() string {
	for {
		if id := s.newID(); id != "" && s.Index(id) < 0 {
			return id
		}
	}
}

func (s *Store) freshIDNotIn(taken map[string]bool) string {
	for {
		if id := s.newID(); id != "" && !taken[id] {
			return id
		}
	}
}

func (s *Store) saveTemplate() error {
	return s.persist.Save(TemplateKey, s.items)
}

func (s *Store) saveChecked() error {
	return s.persist.Save(CheckedKey, s.Checked())
}
