package specfile

import (
	"bytes"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	keyPlaceholderID        = "placeholder_id"
	keyPlaceholderDelimiter = "placeholder_delimiter"
	keyPlaceholders         = "placeholders"
)

// YAMLStore implements types.SpecStore over a types.FS
type YAMLStore struct {
	fs types.FS
}

// NewYAMLStore returns a store reading and writing through fs
func NewYAMLStore(fs types.FS) *YAMLStore {
	return &YAMLStore{fs: fs}
}

// Load reads and parses the specification at path
func (s *YAMLStore) Load(path string) (types.Specification, error) {
	logger := logging.GetLogger("specfile")

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return types.Specification{}, errors.Wrapf(err, errors.ErrFileAccess, "unable to read %s", path).
			WithDetail("path", path)
	}

	spec, err := Parse(data)
	if err != nil {
		if ce, ok := err.(*errors.CreatorlyError); ok {
			return types.Specification{}, ce.WithDetail("path", path)
		}
		return types.Specification{}, err
	}

	logger.Debug().
		Str("path", path).
		Int("placeholders", len(spec.Placeholders)).
		Msg("Specification loaded")
	return spec, nil
}

// Save writes spec to path, keeping placeholder order. When path already
// holds a specification document it is updated in place so comments and
// unchanged entries survive.
func (s *YAMLStore) Save(path string, spec types.Specification) error {
	logger := logging.GetLogger("specfile")

	var data []byte
	existing, err := s.fs.ReadFile(path)
	if err == nil {
		data, err = Merge(existing, spec)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Existing specification unreadable, rewriting it")
		}
	}
	if data == nil {
		if data, err = Marshal(spec); err != nil {
			return err
		}
	}
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "unable to write %s", path).
			WithDetail("path", path)
	}
	return nil
}

// Parse decodes a specification document
func Parse(data []byte) (types.Specification, error) {
	var spec types.Specification

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return spec, errors.Wrap(err, errors.ErrSpecParse, "unable to parse specification")
	}
	// empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return spec, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return spec, errors.Newf(errors.ErrSpecParse, "specification must be a mapping, found %s", kindName(root)).
			WithDetail("line", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case keyPlaceholderID:
			if err := scalarInto(key.Value, value, &spec.PlaceholderID); err != nil {
				return spec, err
			}
		case keyPlaceholderDelimiter:
			if err := scalarInto(key.Value, value, &spec.PlaceholderDelimiter); err != nil {
				return spec, err
			}
		case keyPlaceholders:
			if err := parsePlaceholders(value, &spec); err != nil {
				return spec, err
			}
		}
	}

	return spec, nil
}

func parsePlaceholders(node *yaml.Node, spec *types.Specification) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrSpecParse, "placeholders must be a mapping, found %s", kindName(node)).
			WithDetail("line", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		choice, err := parseChoice(key.Value, value)
		if err != nil {
			return err
		}
		spec.Add(key.Value, choice)
	}
	return nil
}

func parseChoice(key string, node *yaml.Node) (types.Choice, error) {
	switch {
	case node.Kind == yaml.ScalarNode && !isNull(node):
		return types.NewSingleChoice(node.Value), nil
	case node.Kind == yaml.SequenceNode:
		if len(node.Content) == 0 {
			return types.Choice{}, errors.Newf(errors.ErrValidation, "placeholder %q must list at least one option", key).
				WithDetail("key", key).
				WithDetail("line", node.Line)
		}
		options := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return types.Choice{}, errors.Newf(errors.ErrSpecParse, "option of placeholder %q must be a scalar, found %s", key, kindName(item)).
					WithDetail("key", key).
					WithDetail("line", item.Line)
			}
			options = append(options, item.Value)
		}
		return types.NewMultipleChoice(options...), nil
	default:
		return types.Choice{}, errors.Newf(errors.ErrSpecParse, "placeholder %q must be a string or a list of strings, found %s", key, kindName(node)).
			WithDetail("key", key).
			WithDetail("line", node.Line)
	}
}

func scalarInto(field string, node *yaml.Node, dst *string) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return errors.Newf(errors.ErrSpecParse, "%s must be a string, found %s", field, kindName(node)).
			WithDetail("line", node.Line)
	}
	*dst = node.Value
	return nil
}

// Marshal encodes spec as YAML. Unset id and delimiter are omitted.
func Marshal(spec types.Specification) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	if spec.PlaceholderID != "" {
		root.Content = append(root.Content, strNode(keyPlaceholderID), strNode(spec.PlaceholderID))
	}
	if spec.PlaceholderDelimiter != "" {
		root.Content = append(root.Content, strNode(keyPlaceholderDelimiter), strNode(spec.PlaceholderDelimiter))
	}

	placeholders := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range spec.Placeholders {
		placeholders.Content = append(placeholders.Content, strNode(p.Key), choiceNode(p.Choice))
	}
	root.Content = append(root.Content, strNode(keyPlaceholders), placeholders)

	return encode(root)
}

// Merge applies spec to an existing specification document. Entries whose
// value is unchanged keep their node, and with it their comments; changed
// values are replaced, new keys appended and keys spec no longer has removed.
func Merge(existing []byte, spec types.Specification) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(existing, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrSpecParse, "unable to parse specification")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrSpecParse, "specification is not a mapping")
	}
	root := doc.Content[0]

	if spec.PlaceholderID != "" {
		setValue(root, keyPlaceholderID, strNode(spec.PlaceholderID))
	}
	if spec.PlaceholderDelimiter != "" {
		setValue(root, keyPlaceholderDelimiter, strNode(spec.PlaceholderDelimiter))
	}

	placeholders := mappingValue(root, keyPlaceholders)
	if placeholders == nil || placeholders.Kind != yaml.MappingNode {
		placeholders = &yaml.Node{Kind: yaml.MappingNode}
		setValue(root, keyPlaceholders, placeholders)
	}

	kept := make([]*yaml.Node, 0, 2*len(spec.Placeholders))
	for _, p := range spec.Placeholders {
		key, value := mappingEntry(placeholders, p.Key)
		if key == nil {
			kept = append(kept, strNode(p.Key), choiceNode(p.Choice))
			continue
		}
		if current, err := parseChoice(p.Key, value); err != nil || !sameChoice(current, p.Choice) {
			value = choiceNode(p.Choice)
		}
		kept = append(kept, key, value)
	}
	placeholders.Content = kept

	return encode(&doc)
}

func encode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "unable to serialize specification")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "unable to serialize specification")
	}
	return buf.Bytes(), nil
}

func choiceNode(choice types.Choice) *yaml.Node {
	if !choice.IsMultiple() {
		return strNode(choice.Default)
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, opt := range choice.Options {
		seq.Content = append(seq.Content, strNode(opt))
	}
	return seq
}

func sameChoice(a, b types.Choice) bool {
	if a.Kind != b.Kind || a.Default != b.Default || len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			return false
		}
	}
	return true
}

// mappingEntry returns the key and value nodes of key in mapping m
func mappingEntry(m *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i], m.Content[i+1]
		}
	}
	return nil, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	_, value := mappingEntry(m, key)
	return value
}

// setValue replaces the value of key in m, appending the entry when absent
func setValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			if value.Kind == yaml.ScalarNode && m.Content[i+1].Kind == yaml.ScalarNode && m.Content[i+1].Value == value.Value {
				return
			}
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		if isNull(node) {
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
