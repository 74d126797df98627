package agentready

import (
	"context"
	"sort"
	"sync"
)

// Rule is a self-contained, pure check that inspects a document and may
// emit issues.
//
// Implementations must not mutate the document and must not depend on the
// execution order of other rules; this independence is what allows the
// runner to dispatch all rules concurrently over the same Document.
type Rule interface {
	// Metadata returns the rule's static metadata.
	Metadata() RuleMetadata

	// Check inspects the document and returns zero or more issues.
	// A nil or empty slice means the rule is not applicable, not an error.
	Check(ctx context.Context, doc *Document) ([]Issue, error)
}

// RuleMetadata describes a rule independently of its execution.
type RuleMetadata struct {
	// ID uniquely identifies the rule (kebab-case, e.g. "missing-h1").
	ID string `json:"id"`

	// Title is a short human-readable name.
	Title string `json:"title"`

	// Category is the audit domain the rule's issues belong to.
	Category Category `json:"category"`

	// DefaultSeverity is the severity the rule assigns unless a specific
	// check downgrades or upgrades it.
	DefaultSeverity Severity `json:"defaultSeverity"`

	// Priority orders issues for presentation (higher first). It never
	// implies an execution dependency.
	Priority int `json:"priority"`

	// Tags are free-form labels for filtering.
	Tags []string `json:"tags,omitempty"`

	// Description explains what the rule checks and why it matters.
	Description string `json:"description,omitempty"`
}

// Validate returns an error if the metadata contains invalid fields.
func (m *RuleMetadata) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "rule ID required")
	}
	if !m.Category.Valid() {
		return Errorf(EINVALID, "rule %q category %q not recognized", m.ID, m.Category)
	}
	if !m.DefaultSeverity.Valid() {
		return Errorf(EINVALID, "rule %q default severity %q not recognized", m.ID, m.DefaultSeverity)
	}
	return nil
}

// Registry maintains the process-wide collection of rules.
//
// The intended lifecycle is: register every rule at startup, call Freeze,
// then share the registry across concurrent audits. Registration after
// Freeze is rejected, which is what makes concurrent reads safe without
// locking on the read path.
type Registry struct {
	mu     sync.Mutex
	frozen bool
	rules  map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule to the registry.
// Returns ECONFLICT if a rule with the same ID is already registered and
// EINVALID if the registry is frozen or the metadata is malformed.
func (r *Registry) Register(rule Rule) error {
	meta := rule.Metadata()
	if err := meta.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return Errorf(EINVALID, "registry is frozen; rules must be registered at startup")
	}
	if _, ok := r.rules[meta.ID]; ok {
		return Errorf(ECONFLICT, "rule %q already registered", meta.ID)
	}

	r.rules[meta.ID] = rule
	return nil
}

// RegisterAll registers every rule, stopping at the first failure.
func (r *Registry) RegisterAll(rules ...Rule) error {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// Freeze marks the registry read-only. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}

// Get returns the rule with the given ID, or nil if not registered.
func (r *Registry) Get(id string) Rule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rules[id]
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rules)
}

// Rules returns all registered rules sorted by priority descending, then
// by ID for a stable order.
func (r *Registry) Rules() []Rule {
	r.mu.Lock()
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	r.mu.Unlock()

	sort.Slice(rules, func(i, j int) bool {
		mi, mj := rules[i].Metadata(), rules[j].Metadata()
		if mi.Priority != mj.Priority {
			return mi.Priority > mj.Priority
		}
		return mi.ID < mj.ID
	})
	return rules
}
