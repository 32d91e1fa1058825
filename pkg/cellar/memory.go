package cellar

import (
	"slices"
	"sync"

	"github.com/vladshablinsky/brew/pkg/dependency"
	"github.com/vladshablinsky/brew/pkg/version"
)

// Memory is an in-memory cellar. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	installs map[string]*dependency.Installation
}

var _ dependency.Cellar = (*Memory)(nil)

// NewMemory creates an empty cellar.
func NewMemory() *Memory {
	return &Memory{installs: make(map[string]*dependency.Installation)}
}

// Install records f as installed at v with receipt r (which may be nil).
// Installing a second version keeps the first and makes the newest current.
func (m *Memory) Install(f dependency.Formula, v version.Version, r *dependency.Receipt) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst := m.installs[f.Name()]
	if inst == nil {
		inst = &dependency.Installation{Name: f.Name()}
		m.installs[f.Name()] = inst
	}
	if !inst.HasVersion(v) {
		inst.Versions = append(inst.Versions, v)
		slices.SortFunc(inst.Versions, version.Version.Compare)
	}
	if newest := inst.Versions[len(inst.Versions)-1]; newest.Equal(v) {
		inst.Version = v
		inst.Formula = f
		inst.Receipt = r
	}
}

// Uninstall removes every version of name.
func (m *Memory) Uninstall(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.installs, name)
}

// Installation implements dependency.Cellar. The returned value is a copy.
func (m *Memory) Installation(name string) (*dependency.Installation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.installs[name]
	if !ok {
		return nil, nil
	}
	c := *inst
	c.Versions = slices.Clone(inst.Versions)
	return &c, nil
}
