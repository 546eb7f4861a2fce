package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/ledgrid/internal/ctxlog"
)

// ValidateRegistry checks that every module reports the key it was
// registered under, so error messages and function names stay in sync with
// the keys users write in programs.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, key := range r.Keys() {
		m := r.modules[key]
		if m == nil {
			errs = append(errs, fmt.Sprintf("module '%s': registered implementation is nil", key))
			continue
		}
		if m.Name() != key {
			errs = append(errs, fmt.Sprintf("module '%s': implementation reports name '%s'", key, m.Name()))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "modules", r.Keys())
	return nil
}
