// Package memory keeps users, shops and items in process. It backs the test
// suites and DB_DRIVER=memory for local runs without postgres.
package memory

import (
	"sync"

	"github.com/google/uuid"

	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
)

// Store is shared by the three repositories so seller registration and the
// approved-shop join see one consistent view.
type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domainUser.User
	shops map[uuid.UUID]*domainShop.Shop
	items map[uuid.UUID]*domainItem.Item
}

func NewStore() *Store {
	return &Store{
		users: map[uuid.UUID]*domainUser.User{},
		shops: map[uuid.UUID]*domainShop.Shop{},
		items: map[uuid.UUID]*domainItem.Item{},
	}
}

var (
	_ domainUser.Repository = (*UserRepository)(nil)
	_ domainShop.Repository = (*ShopRepository)(nil)
	_ domainItem.Repository = (*ItemRepository)(nil)
)

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Shops() *ShopRepository {
	return &ShopRepository{store: s}
}

func (s *Store) Items() *ItemRepository {
	return &ItemRepository{store: s}
}

func copyUser(u *domainUser.User) *domainUser.User {
	c := *u
	return &c
}

func copyShop(sh *domainShop.Shop) *domainShop.Shop {
	c := *sh
	return &c
}

func copyItem(i *domainItem.Item) *domainItem.Item {
	c := *i
	if i.Attributes != nil {
		c.Attributes = make(map[string]string, len(i.Attributes))
		for k, v := range i.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
