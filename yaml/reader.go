package yaml

import (
	"regexp"
	"strings"

	"github.com/saferwall/unityasset/value"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	yamlv3 "gopkg.in/yaml.v3"
)

// ParseBytes is Parse for raw file bytes: Unity .asset/.meta/.unity files
// saved by some Windows editors carry a UTF-8 byte-order mark, which
// yaml.v3 treats as document content rather than a marker. BOMOverride
// strips it (or transcodes UTF-16 input) before the text ever reaches the
// document splitter.
func ParseBytes(data []byte, opts *Options) ([]*value.UnityClass, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, &ParseError{Message: "decoding input: " + err.Error()}
	}
	return Parse(string(decoded), opts)
}

// Parse decodes Unity YAML text into one UnityClass per document, in file
// order, per spec §4.9.
func Parse(text string, opts *Options) ([]*value.UnityClass, error) {
	logger := opts.logger()

	docs, warnings := splitDocuments(text)
	for _, w := range warnings {
		logger.Warnf("yaml: %v", w)
	}

	classes := make([]*value.UnityClass, 0, len(docs))
	for _, d := range docs {
		class, err := parseDocument(d)
		if err != nil {
			// YAML parse errors are per-document; other documents in a
			// multi-doc file continue, per spec §7.
			logger.Warnf("yaml: document at line %d failed to parse: %v", d.Line, err)
			continue
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// parseDocument decodes one document body (everything after the header
// line) as standard YAML, then lifts the single top-level `ClassName:`
// mapping into a UnityClass.
func parseDocument(d rawDocument) (*value.UnityClass, error) {
	if strings.TrimSpace(d.Body) == "" {
		return &value.UnityClass{
			ClassID:         d.ClassID,
			ClassName:       value.ClassName(d.ClassID),
			Anchor:          d.Anchor,
			ExtraAnchorData: d.ExtraAnchorData,
			Properties:      value.NewObject(),
		}, nil
	}

	var root yamlv3.Node
	if err := yamlv3.Unmarshal([]byte(d.Body), &root); err != nil {
		return nil, &ParseError{Message: err.Error(), Line: d.Line}
	}
	if root.Kind == 0 {
		return &value.UnityClass{
			ClassID:         d.ClassID,
			ClassName:       value.ClassName(d.ClassID),
			Anchor:          d.Anchor,
			ExtraAnchorData: d.ExtraAnchorData,
			Properties:      value.NewObject(),
		}, nil
	}

	doc := &root
	if doc.Kind == yamlv3.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, &ParseError{Message: "empty document body", Line: d.Line}
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yamlv3.MappingNode || len(doc.Content) < 2 {
		return nil, &ParseError{Message: "document body is not a `ClassName:` mapping", Line: d.Line}
	}

	className := doc.Content[0].Value
	propsNode := doc.Content[1]

	props := value.NewObject()
	if propsNode.Kind == yamlv3.MappingNode {
		if err := mappingToObject(propsNode, props); err != nil {
			return nil, err
		}
	}

	return &value.UnityClass{
		ClassID:         d.ClassID,
		ClassName:       className,
		Anchor:          d.Anchor,
		ExtraAnchorData: d.ExtraAnchorData,
		Properties:      props,
	}, nil
}

// mappingToObject walks a mapping node's key/value pairs in order, applying
// Unity's type-inference ladder to scalar values (spec §4.9).
func mappingToObject(n *yamlv3.Node, obj *value.Object) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := nodeToValue(n.Content[i+1])
		if err != nil {
			return err
		}
		obj.Set(key, v)
	}
	return nil
}

var (
	integerPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatPattern   = regexp.MustCompile(`^[-+]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][-+]?[0-9]+)?$`)
	boolPattern    = regexp.MustCompile(`^(true|True|false|False)$`)
)

// nodeToValue converts one yaml.v3 node into a UnityValue, following the
// type-inference ladder in spec §4.9: integer literal → Integer;
// float/exponent/.inf/.nan → Float; true|false|True|False → Bool; quoted
// string → String regardless of shape; anything else → String. A key
// followed by no value ("inverted scalar") decodes to Null.
func nodeToValue(n *yamlv3.Node) (value.Value, error) {
	switch n.Kind {
	case yamlv3.ScalarNode:
		return scalarToValue(n), nil
	case yamlv3.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return value.Null(), err
			}
			items = append(items, v)
		}
		return value.Array(items), nil
	case yamlv3.MappingNode:
		obj := value.NewObject()
		if err := mappingToObject(n, obj); err != nil {
			return value.Null(), err
		}
		return value.Obj(obj), nil
	case yamlv3.AliasNode:
		if n.Alias != nil {
			return nodeToValue(n.Alias)
		}
		return value.Null(), nil
	default:
		return value.Null(), nil
	}
}

func scalarToValue(n *yamlv3.Node) value.Value {
	raw := n.Value

	quoted := n.Style&(yamlv3.DoubleQuotedStyle|yamlv3.SingleQuotedStyle) != 0
	if quoted {
		return value.String(raw)
	}

	// Unquoted empty scalar: either an explicit null or the "inverted
	// scalar" case (a key with no value at all) — both collapse to Null.
	if n.Tag == "!!null" || raw == "" {
		return value.Null()
	}

	lower := strings.ToLower(raw)
	if lower == ".inf" || lower == "-.inf" || lower == "+.inf" || lower == ".nan" {
		return value.Float(inf(lower))
	}

	if integerPattern.MatchString(raw) {
		if iv, ok := parseInt(raw); ok {
			return value.Int(iv)
		}
	}
	if floatPattern.MatchString(raw) {
		if fv, ok := parseFloat(raw); ok {
			return value.Float(fv)
		}
	}
	if boolPattern.MatchString(raw) {
		return value.Bool(lower == "true")
	}
	return value.String(raw)
}
