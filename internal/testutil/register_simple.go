package testutil

import (
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
)

// SimpleModule is a test helper that registers one module implementation
// under a key.
type SimpleModule struct {
	Key    string
	Module module.Module
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.Register(m.Key, m.Module)
}
