package config

import (
	"context"
	"sort"
)

// composite runs several loaders over the same paths and merges the result.
type composite struct {
	loaders []Loader
}

// Compose returns a Loader that delegates to each loader in turn. The
// Converter of the first loader is returned.
func Compose(loaders ...Loader) Loader {
	return &composite{loaders: loaders}
}

func (c *composite) Load(ctx context.Context, paths ...string) (*Model, Converter, error) {
	model := &Model{}
	var conv Converter
	for _, l := range c.loaders {
		m, cv, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, nil, err
		}
		if conv == nil {
			conv = cv
		}
		if err := model.Merge(m); err != nil {
			return nil, nil, err
		}
	}
	return model, conv, nil
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
