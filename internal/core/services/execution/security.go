package execution

import (
	"fmt"
	"regexp"
)

// RuleDef names one disallowed construct and the pattern recognising it
type RuleDef struct {
	Name    string
	Pattern string
}

// SecurityRule is a compiled RuleDef
type SecurityRule struct {
	Name    string
	pattern *regexp.Regexp
}

// RuleSet is an ordered denylist of code constructs.
// It only raises the bar; a textual denylist cannot stop every sandbox escape.
type RuleSet struct {
	rules []SecurityRule
}

var DefaultRuleDefs = []RuleDef{
	{Name: "python-import-os", Pattern: `import\s+os`},
	{Name: "python-import-subprocess", Pattern: `import\s+subprocess`},
	{Name: "system-call", Pattern: `system\s*\(`},
	{Name: "exec-call", Pattern: `exec\s*\(`},
	{Name: "eval-call", Pattern: `eval\s*\(`},
	{Name: "node-require-fs", Pattern: `require\s*\(\s*['"]fs['"]`},
	{Name: "node-require-child-process", Pattern: `require\s*\(\s*['"]child_process['"]`},
	{Name: "c-include-unistd", Pattern: `#include\s*<unistd\.h>`},
	{Name: "java-process-start", Pattern: `Process\.start`},
	{Name: "java-runtime", Pattern: `Runtime\.getRuntime`},
	{Name: "rust-std-process", Pattern: `std::process::`},
	{Name: "go-os-remove", Pattern: `os\.Remove`},
	{Name: "go-os-exec", Pattern: `os/exec`},
	{Name: "syscall", Pattern: `syscall`},
	{Name: "rust-fs-remove", Pattern: `std::fs::remove`},
	{Name: "unsafe-block", Pattern: `unsafe\s*\{`},
	{Name: "scala-sys-process", Pattern: `import\s+scala\.sys\.process`},
}

// DefaultRuleSet returns the rules applied to every language
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(DefaultRuleDefs)
	if err != nil {
		panic(err)
	}
	return rs
}

// NewRuleSet compiles case-insensitive rules in the given order
func NewRuleSet(defs []RuleDef) (*RuleSet, error) {
	rules := make([]SecurityRule, 0, len(defs))
	for _, def := range defs {
		re, err := regexp.Compile("(?i)" + def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid security rule %q: %w", def.Name, err)
		}
		rules = append(rules, SecurityRule{Name: def.Name, pattern: re})
	}
	return &RuleSet{rules: rules}, nil
}

// Match returns the first rule matching code
func (rs *RuleSet) Match(code string) (*SecurityRule, bool) {
	for i := range rs.rules {
		if rs.rules[i].pattern.MatchString(code) {
			return &rs.rules[i], true
		}
	}
	return nil, false
}
