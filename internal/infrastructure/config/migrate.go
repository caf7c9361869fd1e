package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// KeyChangeKind classifies a difference between the config file and the
// built-in defaults.
type KeyChangeKind string

const (
	// KeyAdded is a default key the file does not set.
	KeyAdded KeyChangeKind = "added"
	// KeyUnknown is a key in the file that no setting reads.
	KeyUnknown KeyChangeKind = "unknown"
)

// KeyChange is one key-level difference.
type KeyChange struct {
	Kind  KeyChangeKind
	Key   string
	Value string
}

// opaqueKeys hold user-keyed tables; their entries are not compared.
var opaqueKeys = map[string]bool{
	"images.defaults":   true,
	"navigation.routes": true,
}

// Diff compares the config file with the defaults. A missing file yields
// no changes; it is created with every default on Load.
func (m *Manager) Diff() ([]KeyChange, error) {
	path := m.GetConfigFile()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	user, err := flattenTOML(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	defaultData, err := EncodeTOML(DefaultConfig())
	if err != nil {
		return nil, err
	}
	defaults, err := flattenTOML(defaultData)
	if err != nil {
		return nil, err
	}

	var changes []KeyChange
	for key, value := range defaults {
		if _, ok := user[key]; !ok {
			changes = append(changes, KeyChange{Kind: KeyAdded, Key: key, Value: value})
		}
	}
	for key, value := range user {
		if _, ok := defaults[key]; !ok {
			changes = append(changes, KeyChange{Kind: KeyUnknown, Key: key, Value: value})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Kind != changes[j].Kind {
			return changes[i].Kind < changes[j].Kind
		}
		return changes[i].Key < changes[j].Key
	})
	return changes, nil
}

// Migrate rewrites the config file with every missing default added. The
// values the file sets are kept; unknown keys are dropped. The previous
// file is saved next to it with a .bak suffix. It returns the changes
// that were applied.
func (m *Manager) Migrate() ([]KeyChange, error) {
	changes, err := m.Diff()
	if err != nil || len(changes) == 0 {
		return changes, err
	}

	path := m.GetConfigFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	merged := DefaultConfig()
	if err := toml.Unmarshal(data, merged); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	normalizeConfig(merged)
	if err := validateConfig(merged); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := os.WriteFile(path+".bak", data, filePerm); err != nil {
		return nil, fmt.Errorf("back up config file: %w", err)
	}
	if err := WriteConfigOrdered(merged, path); err != nil {
		return nil, err
	}
	return changes, nil
}

// flattenTOML returns every leaf key of a TOML document in dotted form
// with its value rendered as text.
func flattenTOML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, table map[string]any, out map[string]string) {
	for key, value := range table {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok && !opaqueKeys[full] {
			flatten(full, nested, out)
			continue
		}
		out[full] = formatValue(value)
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		return fmt.Sprintf("{%d entries}", len(val))
	default:
		return fmt.Sprint(val)
	}
}
