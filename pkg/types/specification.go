package types

const (
	// DefaultPlaceholderID is the token prefix used when a specification sets none
	DefaultPlaceholderID = "CREATORLY"

	// DefaultPlaceholderDelimiter separates the prefix from the placeholder key
	DefaultPlaceholderDelimiter = "."
)

// ChoiceKind tells whether a placeholder takes free text or a pick from a list
type ChoiceKind int

const (
	// SingleChoice is a free-text answer with a default
	SingleChoice ChoiceKind = iota
	// MultipleChoice is a pick from an ordered list of options
	MultipleChoice
)

func (k ChoiceKind) String() string {
	switch k {
	case SingleChoice:
		return "single"
	case MultipleChoice:
		return "multiple"
	default:
		return "unknown"
	}
}

// Choice is the answer shape declared for one placeholder.
// Default is only meaningful for SingleChoice, Options only for MultipleChoice.
type Choice struct {
	Kind    ChoiceKind
	Default string
	Options []string
}

// NewSingleChoice returns a free-text choice with the given default
func NewSingleChoice(def string) Choice {
	return Choice{Kind: SingleChoice, Default: def}
}

// NewMultipleChoice returns a choice between the given options, in order
func NewMultipleChoice(options ...string) Choice {
	opts := make([]string, len(options))
	copy(opts, options)
	return Choice{Kind: MultipleChoice, Options: opts}
}

// IsMultiple reports whether the choice is a pick from a list
func (c Choice) IsMultiple() bool {
	return c.Kind == MultipleChoice
}

// DefaultAnswer is the answer used when the user gives none:
// the default for single choices, the first option for multiple choices.
func (c Choice) DefaultAnswer() string {
	if c.IsMultiple() {
		if len(c.Options) == 0 {
			return ""
		}
		return c.Options[0]
	}
	return c.Default
}

// Placeholder binds a key to its choice
type Placeholder struct {
	Key    string
	Choice Choice
}

// Specification is the parsed content of a creatorly.yaml file.
// Placeholders keep their declaration order, which drives prompt order.
type Specification struct {
	PlaceholderID        string
	PlaceholderDelimiter string
	Placeholders         []Placeholder
}

// ID returns the placeholder prefix, falling back to DefaultPlaceholderID
func (s Specification) ID() string {
	if s.PlaceholderID == "" {
		return DefaultPlaceholderID
	}
	return s.PlaceholderID
}

// Delimiter returns the prefix/key separator, falling back to DefaultPlaceholderDelimiter
func (s Specification) Delimiter() string {
	if s.PlaceholderDelimiter == "" {
		return DefaultPlaceholderDelimiter
	}
	return s.PlaceholderDelimiter
}

// Token returns the literal text that stands for key in template files
func (s Specification) Token(key string) string {
	return s.ID() + s.Delimiter() + key
}

// Lookup returns the choice declared for key
func (s Specification) Lookup(key string) (Choice, bool) {
	for _, p := range s.Placeholders {
		if p.Key == key {
			return p.Choice, true
		}
	}
	return Choice{}, false
}

// Has reports whether key is declared
func (s Specification) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Add appends a placeholder, or replaces the choice in place if key exists
func (s *Specification) Add(key string, choice Choice) {
	for i := range s.Placeholders {
		if s.Placeholders[i].Key == key {
			s.Placeholders[i].Choice = choice
			return
		}
	}
	s.Placeholders = append(s.Placeholders, Placeholder{Key: key, Choice: choice})
}

// Keys returns the placeholder keys in declaration order
func (s Specification) Keys() []string {
	keys := make([]string, 0, len(s.Placeholders))
	for _, p := range s.Placeholders {
		keys = append(keys, p.Key)
	}
	return keys
}

// IsEmpty reports whether no placeholder is declared
func (s Specification) IsEmpty() bool {
	return len(s.Placeholders) == 0
}
