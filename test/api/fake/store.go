/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"k8s.io/apimachinery/pkg/util/rand"

	"github.com/serverest-qa/api-tests/test/api/schema"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateName  = errors.New("product name already registered")
)

type User struct {
	Name          string `json:"nome" yaml:"nome"`
	Email         string `json:"email" yaml:"email"`
	Password      string `json:"password" yaml:"password"`
	Administrator string `json:"administrador" yaml:"administrador"`
	ID            string `json:"_id" yaml:"_id"`
}

func (u User) id() string {
	return u.ID
}

type Product struct {
	Name        string `json:"nome" yaml:"nome"`
	Price       int    `json:"preco" yaml:"preco"`
	Description string `json:"descricao" yaml:"descricao"`
	Quantity    int    `json:"quantidade" yaml:"quantidade"`
	ID          string `json:"_id" yaml:"_id"`
}

func (p Product) id() string {
	return p.ID
}

// Seed is the initial dataset.
type Seed struct {
	Users    []User    `yaml:"usuarios"`
	Products []Product `yaml:"produtos"`
}

// ParseSeed decodes a YAML dataset, rejecting records with malformed ids.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed

	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	for _, user := range seed.Users {
		if !schema.IsValidID(user.ID) {
			return nil, fmt.Errorf("%w: user %q", schema.ErrInvalidID, user.ID)
		}
	}

	for _, product := range seed.Products {
		if !schema.IsValidID(product.ID) {
			return nil, fmt.Errorf("%w: product %q", schema.ErrInvalidID, product.ID)
		}
	}

	return &seed, nil
}

// collection keeps records in insertion order, which is the order the
// remote API lists them in.
type collection[T interface{ id() string }] struct {
	order []string
	items map[string]T
}

func newCollection[T interface{ id() string }](records []T) *collection[T] {
	c := &collection[T]{
		items: map[string]T{},
	}

	for _, record := range records {
		c.put(record)
	}

	return c
}

func (c *collection[T]) get(id string) (T, bool) {
	record, ok := c.items[id]

	return record, ok
}

func (c *collection[T]) put(record T) {
	if _, ok := c.items[record.id()]; !ok {
		c.order = append(c.order, record.id())
	}

	c.items[record.id()] = record
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}

	delete(c.items, id)

	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })

	return true
}

func (c *collection[T]) find(match func(T) bool) []T {
	var out []T

	for _, id := range c.order {
		if record := c.items[id]; match(record) {
			out = append(out, record)
		}
	}

	return out
}

func (c *collection[T]) exists(match func(T) bool) bool {
	return len(c.find(match)) > 0
}

// Store holds the fake's state. All methods are safe for concurrent use.
type Store struct {
	lock     sync.Mutex
	seed     *Seed
	users    *collection[User]
	products *collection[Product]
}

func NewStore(seed *Seed) *Store {
	s := &Store{
		seed: seed,
	}

	s.Reset()

	return s
}

// Reset restores the initial dataset.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.users = newCollection(s.seed.Users)
	s.products = newCollection(s.seed.Products)
}

func newID() string {
	return rand.String(schema.IDLength)
}

func (s *Store) ListUsers(match func(User) bool) []User {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.users.find(match)
}

func (s *Store) GetUser(id string) (User, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.users.get(id)
}

// FindUserByCredentials returns the user with exactly this email and password.
func (s *Store) FindUserByCredentials(email, password string) (User, bool) {
	users := s.ListUsers(func(u User) bool {
		return u.Email == email && u.Password == password
	})

	if len(users) == 0 {
		return User{}, false
	}

	return users[0], true
}

// CreateUser assigns an id and stores the user. Emails are unique.
func (s *Store) CreateUser(user User) (User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.users.exists(func(u User) bool { return u.Email == user.Email }) {
		return User{}, ErrDuplicateEmail
	}

	user.ID = newID()
	s.users.put(user)

	return user, nil
}

// ReplaceUser overwrites the user with id. When there is none a new user is
// created under a fresh id and created is true.
func (s *Store) ReplaceUser(id string, user User) (stored User, created bool, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, exists := s.users.get(id)

	if s.users.exists(func(u User) bool { return u.Email == user.Email && u.ID != id }) {
		return User{}, false, ErrDuplicateEmail
	}

	if exists {
		user.ID = id
	} else {
		user.ID = newID()
	}

	s.users.put(user)

	return user, !exists, nil
}

func (s *Store) DeleteUser(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.users.remove(id)
}

func (s *Store) ListProducts(match func(Product) bool) []Product {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.products.find(match)
}

func (s *Store) GetProduct(id string) (Product, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.products.get(id)
}

// CreateProduct assigns an id and stores the product. Names are unique.
func (s *Store) CreateProduct(product Product) (Product, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.products.exists(func(p Product) bool { return p.Name == product.Name }) {
		return Product{}, ErrDuplicateName
	}

	product.ID = newID()
	s.products.put(product)

	return product, nil
}

// ReplaceProduct is ReplaceUser for products.
func (s *Store) ReplaceProduct(id string, product Product) (stored Product, created bool, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, exists := s.products.get(id)

	if s.products.exists(func(p Product) bool { return p.Name == product.Name && p.ID != id }) {
		return Product{}, false, ErrDuplicateName
	}

	if exists {
		product.ID = id
	} else {
		product.ID = newID()
	}

	s.products.put(product)

	return product, !exists, nil
}

func (s *Store) DeleteProduct(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.products.remove(id)
}
