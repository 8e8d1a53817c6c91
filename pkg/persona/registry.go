package persona

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPersona is returned when a persona name is not present in the registry.
	ErrUnknownPersona = errors.New("unknown persona")
	// ErrEmptyMessage is returned when a custom system message is blank.
	ErrEmptyMessage = errors.New("empty system message")
)

const (
	DefaultName = "sassy"
	CustomName  = "custom"
)

//go:embed "personas.yaml"
var builtinPersonasYAML []byte

// Registry maps persona names to system-prompt text. The built-in personas
// are fixed at construction; only the "custom" entry is mutable afterwards.
type Registry struct {
	prompts map[string]string
}

func NewRegistry() *Registry {
	prompts := map[string]string{}
	// the embedded catalog is validated by TestBuiltinPersonas
	if err := yaml.Unmarshal(builtinPersonasYAML, &prompts); err != nil {
		panic(err)
	}

	return &Registry{prompts: prompts}
}

// Get returns the system prompt registered under name.
func (r *Registry) Get(name string) (string, error) {
	prompt, ok := r.prompts[name]
	if !ok {
		return "", errors.Wrap(ErrUnknownPersona, name)
	}
	return prompt, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.prompts[name]
	return ok
}

// SetCustom stores text under the "custom" key. Blank text is rejected.
func (r *Registry) SetCustom(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	r.prompts[CustomName] = text
	return nil
}

// Names returns all registered persona names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.prompts))
	for name := range r.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile merges persona definitions from a YAML file of name: prompt
// pairs into the registry, overriding existing entries.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read persona file %s", path)
	}

	prompts := map[string]string{}
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return errors.Wrapf(err, "could not parse persona file %s", path)
	}

	for name, prompt := range prompts {
		r.prompts[name] = prompt
	}

	return nil
}
