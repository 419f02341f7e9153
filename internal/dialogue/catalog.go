// Package dialogue holds the dialogue catalog and the state machine that runs
// one linear dialogue session at a time.
package dialogue

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDialogueNotFound is returned when no entry has the requested name.
	ErrDialogueNotFound = errors.New("dialogue not found")
	// ErrEmptyDialogue is returned at load time for entries without messages.
	ErrEmptyDialogue = errors.New("dialogue has no messages")
	// ErrDuplicateDialogue is returned at load time when two entries share a name.
	ErrDuplicateDialogue = errors.New("duplicate dialogue name")
	// ErrUnknownPolicy is returned at load time for an unrecognised onCompletion.
	ErrUnknownPolicy = errors.New("unknown completion policy")
)

// Policy is what happens when the last message of a dialogue is acknowledged.
type Policy int

const (
	// PolicyDestroy closes the dialogue box, resumes the world and re-enables
	// the entry for the next trigger.
	PolicyDestroy Policy = iota + 1
)

var policyNames = map[Policy]string{
	PolicyDestroy: "destroy",
}

// String returns the catalog spelling of the policy.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePolicy converts the catalog spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// UnmarshalJSON decodes the policy from its string form.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("onCompletion must be a string: %w", err)
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON encodes the policy as its string form.
func (p Policy) MarshalJSON() ([]byte, error) {
	name, ok := policyNames[p]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return json.Marshal(name)
}

// Message is one line of a dialogue.
type Message struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Entry is a named, linear sequence of messages.
type Entry struct {
	Name             string    `json:"name"`
	PlayerCanTrigger bool      `json:"playerCanTrigger"`
	OnCompletion     Policy    `json:"onCompletion"`
	Messages         []Message `json:"messages"`
}

// Validate checks if an entry is properly configured
func (e *Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("dialogue must have a name")
	}
	if len(e.Messages) == 0 {
		return fmt.Errorf("dialogue %s: %w", e.Name, ErrEmptyDialogue)
	}
	if _, ok := policyNames[e.OnCompletion]; !ok {
		return fmt.Errorf("dialogue %s: %w", e.Name, ErrUnknownPolicy)
	}
	return nil
}

// Catalog is the set of dialogue entries for a scene, keyed by name.
type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

// NewCatalog validates entries and builds a catalog from them.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Entry, len(entries))}
	for i := range entries {
		e := entries[i]
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, exists := c.byName[e.Name]; exists {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateDialogue, e.Name)
		}
		c.entries = append(c.entries, &e)
		c.byName[e.Name] = &e
	}
	return c, nil
}

// ParseCatalog parses a JSON array of entries and validates it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue catalog: %w", err)
	}
	return NewCatalog(entries)
}

// Get returns the entry with the given name.
func (c *Catalog) Get(name string) (*Entry, error) {
	e, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDialogueNotFound, name)
	}
	return e, nil
}

// Names returns entry names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
