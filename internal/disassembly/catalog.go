package disassembly

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownDataset = errors.New("disassembly: unknown dataset")

// Provider отдаёт наборы данных по имени.
type Provider interface {
	Dataset(name string) (*Dataset, error)
	Names() []string
}

// Catalog — Provider поверх конструкторов. Каждый вызов возвращает свежую копию,
// так что вызывающий не может испортить общие таблицы.
type Catalog struct {
	builders map[string]func() *Dataset
}

func NewCatalog() *Catalog {
	return &Catalog{builders: make(map[string]func() *Dataset)}
}

// DefaultCatalog содержит встроенные наборы данных.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register("stapler", Stapler)
	return c
}

func (c *Catalog) Register(name string, build func() *Dataset) {
	c.builders[name] = build
}

func (c *Catalog) Dataset(name string) (*Dataset, error) {
	build, ok := c.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDataset, name)
	}
	ds := build()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.builders))
	for k := range c.builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
