package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk YAML shape for a custom agent roster.
type rosterFile struct {
	Agents []*Agent `yaml:"agents"`
}

// LoadRoster reads a YAML roster of agents from path. The file holds an
// `agents` list of {name, role, model} entries; model is optional. This is
// how new personas are added without code changes.
func LoadRoster(path string) ([]*Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}

	if len(file.Agents) == 0 {
		return nil, fmt.Errorf("roster %s defines no agents", path)
	}

	if err := ValidateRoster(file.Agents); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}

	return file.Agents, nil
}

// ValidateRoster checks the roster invariants: every agent has a non-empty
// name and role prompt, and names are unique case-insensitively.
func ValidateRoster(agents []*Agent) error {
	seen := make(map[string]string, len(agents))

	for i, a := range agents {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("agent %d has an empty name", i)
		}
		if strings.TrimSpace(a.RolePrompt) == "" {
			return fmt.Errorf("agent %q has an empty role prompt", name)
		}

		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("duplicate agent name %q (conflicts with %q)", name, prev)
		}
		seen[key] = name
	}

	return nil
}
