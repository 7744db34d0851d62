package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is a named Postman API key credential.
type Profile struct {
	Name      string `yaml:"-"`
	APIKey    string `yaml:"api_key"`
	Label     string `yaml:"label,omitempty"`
	Workspace string `yaml:"workspace,omitempty"`
}

// Registry holds all configured profiles and the name of the default one.
// Profiles keep their declaration order so that "first profile" is a
// meaningful, stable notion across saves.
type Registry struct {
	DefaultProfile string

	profiles map[string]*Profile
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Profiles returns all profiles in declaration order.
func (r *Registry) Profiles() []*Profile {
	result := make([]*Profile, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.profiles[name])
	}
	return result
}

// Names returns all profile names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of profiles.
func (r *Registry) Len() int { return len(r.profiles) }

// Profile returns the named profile, or the default profile when name is
// empty. Fails with *ProfileNotFoundError when no such profile exists.
func (r *Registry) Profile(name string) (*Profile, error) {
	if name == "" {
		name = r.DefaultProfile
	}
	p, ok := r.profiles[name]
	if !ok {
		return nil, &ProfileNotFoundError{Name: name, Available: r.Names()}
	}
	return p, nil
}

// put inserts or overwrites a profile, keeping the original position on
// overwrite.
func (r *Registry) put(p *Profile) {
	if _, exists := r.profiles[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
}

func (r *Registry) delete(name string) {
	delete(r.profiles, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Store reads and writes the registry at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/pmctl/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "pmctl", "config.yaml"), nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Dir returns the directory holding the config file.
func (s *Store) Dir() string { return filepath.Dir(s.path) }

// registryFile is the on-disk shape. Profiles are kept as a raw yaml.Node
// so their declaration order survives the map round trip.
type registryFile struct {
	DefaultProfile string    `yaml:"default_profile,omitempty"`
	Profiles       yaml.Node `yaml:"profiles"`
}

// Load reads the registry from disk. Fails with ErrConfigNotFound when the
// file does not exist and ErrEmptyRegistry when it defines no profiles.
// The default profile falls back to the first-declared profile when the
// file does not name one.
func (s *Store) Load() (*Registry, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (run 'pmctl profile add <name> --api-key <key>' to create one)",
				ErrConfigNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	registry := NewRegistry()
	if file.Profiles.Kind == yaml.MappingNode {
		// Mapping node content alternates key and value nodes.
		for i := 0; i+1 < len(file.Profiles.Content); i += 2 {
			name := file.Profiles.Content[i].Value
			p := &Profile{Name: name}
			if err := file.Profiles.Content[i+1].Decode(p); err != nil {
				return nil, fmt.Errorf("failed to parse profile %q: %w", name, err)
			}
			registry.put(p)
		}
	}

	if registry.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyRegistry, s.path)
	}

	registry.DefaultProfile = file.DefaultProfile
	if registry.DefaultProfile == "" {
		registry.DefaultProfile = registry.order[0]
	}
	return registry, nil
}

// Save regenerates the whole config file from the registry. The content is
// written to a temp file in the same directory and renamed into place so a
// partial write cannot corrupt already-saved profiles.
func (s *Store) Save(registry *Registry) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	profilesNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range registry.order {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(registry.profiles[name]); err != nil {
			return fmt.Errorf("failed to encode profile %q: %w", name, err)
		}
		profilesNode.Content = append(profilesNode.Content, keyNode, valueNode)
	}

	file := registryFile{
		DefaultProfile: registry.DefaultProfile,
		Profiles:       *profilesNode,
	}

	content, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir(), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// AddProfile inserts or overwrites a profile. The new profile becomes the
// default when the registry was empty or missing, when it is the first
// profile ever added, or when setDefault is true.
func (s *Store) AddProfile(name, apiKey, label string, setDefault bool) (*Registry, error) {
	registry, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) && !errors.Is(err, ErrEmptyRegistry) {
			return nil, err
		}
		registry = NewRegistry()
		registry.DefaultProfile = name
	}

	var workspace string
	if existing, ok := registry.profiles[name]; ok {
		workspace = existing.Workspace
	}
	registry.put(&Profile{Name: name, APIKey: apiKey, Label: label, Workspace: workspace})

	if setDefault || registry.Len() == 1 {
		registry.DefaultProfile = name
	}

	if err := s.Save(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// RemoveProfile deletes a profile. When the default profile is removed the
// first remaining profile in declaration order becomes the new default, or
// the empty string when none remain.
func (s *Store) RemoveProfile(name string) (*Registry, error) {
	registry, err := s.Load()
	if err != nil {
		return nil, err
	}

	if _, ok := registry.profiles[name]; !ok {
		return nil, &ProfileNotFoundError{Name: name, Available: registry.Names()}
	}
	registry.delete(name)

	if registry.DefaultProfile == name {
		registry.DefaultProfile = ""
		if len(registry.order) > 0 {
			registry.DefaultProfile = registry.order[0]
		}
	}

	if err := s.Save(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// SetDefaultProfile switches the default profile.
func (s *Store) SetDefaultProfile(name string) (*Registry, error) {
	registry, err := s.Load()
	if err != nil {
		return nil, err
	}

	if _, ok := registry.profiles[name]; !ok {
		return nil, &ProfileNotFoundError{Name: name, Available: registry.Names()}
	}
	registry.DefaultProfile = name

	if err := s.Save(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// SetProfileWorkspace records a default workspace ID on a profile. An empty
// name targets the current default profile.
func (s *Store) SetProfileWorkspace(name, workspaceID string) (*Registry, error) {
	registry, err := s.Load()
	if err != nil {
		return nil, err
	}

	p, err := registry.Profile(name)
	if err != nil {
		return nil, err
	}
	p.Workspace = workspaceID

	if err := s.Save(registry); err != nil {
		return nil, err
	}
	return registry, nil
}
