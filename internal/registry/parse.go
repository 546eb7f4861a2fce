package registry

import (
	"fmt"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/module"
)

// UnknownModuleError reports a raw module whose key is not registered.
type UnknownModuleError struct {
	Key   string
	Index int
	Where string
}

func (e *UnknownModuleError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("%s: module #%d: unknown module key %q", e.Where, e.Index, e.Key)
	}
	return fmt.Sprintf("module #%d: unknown module key %q", e.Index, e.Key)
}

// ParseModules resolves a raw module list (as found under config.ModulesKey)
// into configured pairs. raw may be nil, meaning an empty list.
func (r *Registry) ParseModules(raw any) ([]module.Pair, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]*config.RawModule)
	if !ok {
		return nil, fmt.Errorf("expected a list of modules, got %T", raw)
	}

	pairs := make([]module.Pair, 0, len(list))
	for i, rm := range list {
		if rm == nil || rm.Config == nil {
			return nil, fmt.Errorf("module #%d: missing configuration", i)
		}
		m, ok := r.Lookup(rm.Key)
		if !ok {
			var where string
			if rng := rm.Config.Range(); rng.Filename != "" {
				where = rng.String()
			}
			return nil, &UnknownModuleError{Key: rm.Key, Index: i, Where: where}
		}
		pairs = append(pairs, module.Pair{Module: m, Config: rm.Config})
	}
	return pairs, nil
}
