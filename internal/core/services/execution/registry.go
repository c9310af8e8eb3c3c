package execution

import (
	"fmt"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

const DefaultFunctionPrefix = "maximizehire"

// Registry maps a language to the backend function that runs it.
// It is built once and only read afterwards.
type Registry struct {
	functions map[string]string
	order     []string
}

// NewRegistry builds a registry naming every backend <prefix>-<language>-executor
func NewRegistry(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultFunctionPrefix
	}
	functions := make(map[string]string, len(domain.SupportedLanguages))
	order := make([]string, 0, len(domain.SupportedLanguages))
	for _, lang := range domain.SupportedLanguages {
		functions[string(lang)] = fmt.Sprintf("%s-%s-executor", prefix, lang)
		order = append(order, string(lang))
	}
	return &Registry{functions: functions, order: order}
}

// FunctionName returns the backend function for language
func (r *Registry) FunctionName(language string) (string, bool) {
	name, ok := r.functions[language]
	return name, ok
}

// Languages returns the supported languages in display order
func (r *Registry) Languages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
