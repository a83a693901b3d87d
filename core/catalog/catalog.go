package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/irsalhamdi/e-commerce-books/validate"
	"gopkg.in/yaml.v3"
)

type Entry struct {
	ID    string `yaml:"id" validate:"required"`
	Price int    `yaml:"price" validate:"gte=0"`
}

type file struct {
	Items []Entry `yaml:"items"`
}

// Catalog maps item identifiers to unit prices in the smallest currency unit.
// It is read only once built.
type Catalog struct {
	prices map[string]int
}

func New(entries ...Entry) (*Catalog, error) {
	prices := make(map[string]int, len(entries))
	for _, e := range entries {
		if err := validate.Check(e); err != nil {
			return nil, fmt.Errorf("validating entry[%s]: %w", e.ID, err)
		}
		if _, ok := prices[e.ID]; ok {
			return nil, fmt.Errorf("duplicated entry[%s]", e.ID)
		}
		prices[e.ID] = e.Price
	}
	return &Catalog{prices: prices}, nil
}

func FromPrices(prices map[string]int) (*Catalog, error) {
	entries := make([]Entry, 0, len(prices))
	for id, p := range prices {
		entries = append(entries, Entry{ID: id, Price: p})
	}
	return New(entries...)
}

func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog file: %w", err)
	}

	return New(f.Items...)
}

func (c *Catalog) Price(id string) (int, bool) {
	p, ok := c.prices[id]
	return p, ok
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.prices[id]
	return ok
}

func (c *Catalog) Len() int { return len(c.prices) }

func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.prices))
	for id, p := range c.prices {
		entries = append(entries, Entry{ID: id, Price: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
