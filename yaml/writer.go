package yaml

import (
	"strconv"
	"strings"

	"github.com/saferwall/unityasset/value"
)

// Write renders classes back to Unity YAML text, per spec §4.9. The
// class-count/field-count level round-trips with Parse; byte-identical
// round-tripping is not guaranteed (inline vs block layout is a heuristic).
func Write(classes []*value.UnityClass, opts *Options) (string, error) {
	w := &writer{ending: opts.lineEnding()}

	var buf strings.Builder
	buf.WriteString("%YAML 1.1" + w.ending)
	buf.WriteString("%TAG !u! tag:unity3d.com,2011:" + w.ending)

	for _, c := range classes {
		if c == nil {
			continue
		}
		header := "--- !u!" + strconv.FormatInt(int64(c.ClassID), 10) + " &" + c.Anchor
		if c.ExtraAnchorData != "" {
			header += " " + c.ExtraAnchorData
		}
		buf.WriteString(header + w.ending)
		buf.WriteString(c.ClassName + ":" + w.ending)
		if c.Properties != nil && c.Properties.Len() > 0 {
			w.writeProperties(&buf, c.Properties, 1)
		}
	}
	return buf.String(), nil
}

type writer struct {
	ending string
}

func (w *writer) writeProperties(buf *strings.Builder, obj *value.Object, indent int) {
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		w.writeField(buf, indent, k, v)
	}
}

func (w *writer) writeField(buf *strings.Builder, indent int, key string, v value.Value) {
	pad := strings.Repeat("  ", indent)
	switch v.Kind() {
	case value.KindObject:
		o := v.Object()
		if o.Len() == 0 {
			buf.WriteString(pad + key + ": {}" + w.ending)
			return
		}
		if canInlineObject(o) {
			buf.WriteString(pad + key + ": " + inlineObject(o) + w.ending)
			return
		}
		buf.WriteString(pad + key + ":" + w.ending)
		w.writeProperties(buf, o, indent+1)
	case value.KindArray:
		items := v.Items()
		if len(items) == 0 {
			buf.WriteString(pad + key + ": []" + w.ending)
			return
		}
		if canInlineArray(items) {
			buf.WriteString(pad + key + ": " + inlineArray(items) + w.ending)
			return
		}
		buf.WriteString(pad + key + ":" + w.ending)
		for _, it := range items {
			w.writeArrayItem(buf, indent+1, it)
		}
	default:
		buf.WriteString(pad + key + ": " + formatScalar(v) + w.ending)
	}
}

// writeArrayItem renders one block-form sequence element. Object elements
// attach their first field to the "- " marker, matching Unity's
// list-of-mappings style (spec §8 scenario 5's `platformData` list).
func (w *writer) writeArrayItem(buf *strings.Builder, indent int, v value.Value) {
	pad := strings.Repeat("  ", indent)
	switch v.Kind() {
	case value.KindObject:
		o := v.Object()
		if o.Len() == 0 {
			buf.WriteString(pad + "- {}" + w.ending)
			return
		}
		var inner strings.Builder
		w.writeProperties(&inner, o, indent+1)
		text := inner.String()
		childPad := strings.Repeat("  ", indent+1)
		if strings.HasPrefix(text, childPad) {
			text = pad + "- " + text[len(childPad):]
		}
		buf.WriteString(text)
	case value.KindArray:
		items := v.Items()
		if len(items) == 0 {
			buf.WriteString(pad + "- []" + w.ending)
			return
		}
		buf.WriteString(pad + "- " + inlineArray(items) + w.ending)
	default:
		buf.WriteString(pad + "- " + formatScalar(v) + w.ending)
	}
}

// isSimpleScalar reports whether v qualifies as a "simple field" for the
// inline {}/[] heuristics: numbers, bools, null, or a short string.
func isSimpleScalar(v value.Value) bool {
	switch v.Kind() {
	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat:
		return true
	case value.KindString:
		return len(v.Str()) <= 24 && !strings.Contains(v.Str(), "\n")
	default:
		return false
	}
}

// canInlineObject reports whether an object qualifies for `{}`-form: at
// most 3 simple fields, per spec §4.9.
func canInlineObject(o *value.Object) bool {
	if o.Len() > 3 {
		return false
	}
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		if !isSimpleScalar(v) {
			return false
		}
	}
	return true
}

// canInlineArray reports whether a sequence qualifies for `[]`-form: every
// element is a simple scalar, per spec §4.9.
func canInlineArray(items []value.Value) bool {
	for _, v := range items {
		if !isSimpleScalar(v) {
			return false
		}
	}
	return true
}

func inlineValue(v value.Value) string {
	switch v.Kind() {
	case value.KindObject:
		return inlineObject(v.Object())
	case value.KindArray:
		return inlineArray(v.Items())
	default:
		return formatScalar(v)
	}
}

func inlineObject(o *value.Object) string {
	parts := make([]string, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		parts = append(parts, k+": "+inlineValue(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func inlineArray(items []value.Value) string {
	parts := make([]string, 0, len(items))
	for _, v := range items {
		parts = append(parts, inlineValue(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatScalar renders a scalar value, per spec §4.9: Null → {fileID: 0};
// Bool → 0|1; numbers in decimal form; strings quoted only when they need
// it.
func formatScalar(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "{fileID: 0}"
	case value.KindBool:
		if v.Bool() {
			return "1"
		}
		return "0"
	case value.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case value.KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case value.KindString:
		return formatString(v.Str())
	default:
		return ""
	}
}

// formatString quotes s iff it contains a character or shape that would
// otherwise change its parsed meaning, per spec §4.9.
func formatString(s string) string {
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if strings.ContainsAny(s, ":#[]{}\"\n") {
		return true
	}
	return false
}
