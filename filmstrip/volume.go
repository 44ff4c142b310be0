package filmstrip

import (
	"math"
	"sort"
)

// VolumeMap holds per-participant volumes in [0,1]. Entries are never
// expired here; removing a departed participant's entry is the caller's call.
type VolumeMap struct {
	volumes map[string]float64
}

// NewVolumeMap returns an empty map.
func NewVolumeMap() *VolumeMap {
	return &VolumeMap{volumes: make(map[string]float64)}
}

// Set clamps v into [0,1] and stores it. NaN is rejected. It returns the
// stored value and whether the entry changed.
func (m *VolumeMap) Set(id string, v float64) (float64, bool) {
	if id == "" || math.IsNaN(v) {
		return 0, false
	}
	v = math.Max(0, math.Min(1, v))
	if old, ok := m.volumes[id]; ok && old == v {
		return v, false
	}
	m.volumes[id] = v
	return v, true
}

// Get returns the volume for id and whether one was set.
func (m *VolumeMap) Get(id string) (float64, bool) {
	v, ok := m.volumes[id]
	return v, ok
}

// Delete removes the entry for id.
func (m *VolumeMap) Delete(id string) bool {
	if _, ok := m.volumes[id]; !ok {
		return false
	}
	delete(m.volumes, id)
	return true
}

// IDs returns the ids with a volume set, sorted.
func (m *VolumeMap) IDs() []string {
	ids := make([]string, 0, len(m.volumes))
	for id := range m.volumes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a copy of the map.
func (m *VolumeMap) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(m.volumes))
	for id, v := range m.volumes {
		out[id] = v
	}
	return out
}
