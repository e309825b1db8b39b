package config

import (
	"fmt"
	"strconv"
	"sync"
)

// FormatValue renders a setting the way it is persisted: booleans as
// "true"/"false", numbers in their shortest round-trip form.
func FormatValue(v any) (string, error) {
	switch vv := v.(type) {
	case bool:
		return strconv.FormatBool(vv), nil
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(vv), 'g', -1, 32), nil
	case int:
		return strconv.Itoa(vv), nil
	case int64:
		return strconv.FormatInt(vv, 10), nil
	case string:
		return vv, nil
	case fmt.Stringer:
		return vv.String(), nil
	default:
		return "", fmt.Errorf("unsupported setting type %T", v)
	}
}

// ParseBool parses a persisted boolean. Values written by older tools as
// "1"/"0" or "True"/"False" are accepted too.
func ParseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean setting %q: %w", s, err)
	}
	return b, nil
}

// ParseFloat parses a persisted number.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric setting %q: %w", s, err)
	}
	return f, nil
}

// MemoryStore is an in-process settings store. It is used by the offline
// CLI and by tests that do not need a database.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (m *MemoryStore) get(section, name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.values[section][name]
	return s, ok
}

// GetString returns the raw value of a setting.
func (m *MemoryStore) GetString(section, name string) (string, bool, error) {
	s, ok := m.get(section, name)
	return s, ok, nil
}

// GetBool returns a boolean setting. ok is false when the key is missing.
func (m *MemoryStore) GetBool(section, name string) (bool, bool, error) {
	s, ok := m.get(section, name)
	if !ok {
		return false, false, nil
	}
	b, err := ParseBool(s)
	if err != nil {
		return false, true, err
	}
	return b, true, nil
}

// GetFloat returns a numeric setting. ok is false when the key is missing.
func (m *MemoryStore) GetFloat(section, name string) (float64, bool, error) {
	s, ok := m.get(section, name)
	if !ok {
		return 0, false, nil
	}
	f, err := ParseFloat(s)
	if err != nil {
		return 0, true, err
	}
	return f, true, nil
}

// Set stores value under section/name.
func (m *MemoryStore) Set(section, name string, value any) error {
	s, err := FormatValue(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[section] == nil {
		m.values[section] = make(map[string]string)
	}
	m.values[section][name] = s
	return nil
}

// Section returns a copy of every value stored under section.
func (m *MemoryStore) Section(section string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values[section]))
	for k, v := range m.values[section] {
		out[k] = v
	}
	return out
}
