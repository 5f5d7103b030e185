package attributes

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Enum wraps enum attributes. The backend stores the index; the wrapper
// speaks item strings.
type Enum struct {
	Attr
}

func (e Enum) GoString() string { return entity.Repr("EnumAttribute", e.FullName()) }

// Items returns the enum's items in declaration order.
func (e Enum) Items() ([]string, error) {
	return e.env.Backend.EnumItems(e.FullName())
}

// Value returns the current item.
func (e Enum) Value() (string, error) {
	items, err := e.Items()
	if err != nil {
		return "", err
	}
	idx, err := e.Index()
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(items) {
		return "", fmt.Errorf("%s: %w: index %d outside items %v",
			e.FullName(), scene.ErrBadAttributeValue, idx, items)
	}
	return items[idx], nil
}

// Index returns the current item index.
func (e Enum) Index() (int, error) {
	raw, err := e.Get()
	if err != nil {
		return 0, err
	}
	idx, ok := raw.(int)
	if !ok {
		return 0, fmt.Errorf("%s: %w: %T", e.FullName(), scene.ErrBadAttributeValue, raw)
	}
	return idx, nil
}

// SetValue sets the current item by name. The item is validated against the
// item list before any mutation is issued.
func (e Enum) SetValue(item string) error {
	idx, err := e.ItemIndex(item)
	if err != nil {
		return err
	}
	return e.Set(idx)
}

// ItemIndex returns the index of an item, or an error naming the valid set.
func (e Enum) ItemIndex(item string) (int, error) {
	items, err := e.Items()
	if err != nil {
		return 0, err
	}
	for i, candidate := range items {
		if candidate == item {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown enum item %q, expected one of %v", e.FullName(), item, items)
}
