package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NamedContext describes one MWAP deployment a user can talk to
type NamedContext struct {
	Name       string `yaml:"name"`
	APIBaseURL string `yaml:"api-url"`
	IssuerURL  string `yaml:"issuer-url,omitempty"`
	ClientID   string `yaml:"client-id,omitempty"`
}

// ContextsFile is the on-disk shape of the context file
type ContextsFile struct {
	CurrentContext string         `yaml:"current-context,omitempty"`
	Contexts       []NamedContext `yaml:"contexts"`
}

// DefaultContextsPath returns the default context file location
func DefaultContextsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config dir: %w", err)
	}
	return filepath.Join(dir, "mwap", "config.yaml"), nil
}

// LoadContexts reads the context file. A missing file yields an empty set.
func LoadContexts(path string) (*ContextsFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ContextsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var cf ContextsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse context file: %w", err)
	}
	return &cf, nil
}

// Save writes the context file, creating parent directories as needed
func (cf *ContextsFile) Save(path string) error {
	data, err := yaml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("failed to marshal context file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}
	return nil
}

// Current returns the active context, or nil when none is selected
func (cf *ContextsFile) Current() *NamedContext {
	return cf.Get(cf.CurrentContext)
}

// Get returns the named context, or nil when absent
func (cf *ContextsFile) Get(name string) *NamedContext {
	if name == "" {
		return nil
	}
	for i := range cf.Contexts {
		if cf.Contexts[i].Name == name {
			return &cf.Contexts[i]
		}
	}
	return nil
}

// Use selects the named context as current
func (cf *ContextsFile) Use(name string) error {
	if cf.Get(name) == nil {
		return fmt.Errorf("unknown context: %s", name)
	}
	cf.CurrentContext = name
	return nil
}

// Set adds or replaces a named context
func (cf *ContextsFile) Set(nc NamedContext) {
	for i := range cf.Contexts {
		if cf.Contexts[i].Name == nc.Name {
			cf.Contexts[i] = nc
			return
		}
	}
	cf.Contexts = append(cf.Contexts, nc)
}
