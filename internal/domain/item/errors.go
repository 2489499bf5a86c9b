package item

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrNotItemOwner     = errors.New("item belongs to another seller")
	ErrUnknownKind      = errors.New("unknown catalog kind")
	ErrMissingAttribute = errors.New("missing required attribute")
)
