package yaml

import (
	"testing"

	"github.com/saferwall/unityasset/value"
)

const scenarioThreeText = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1 &100
GameObject:
  m_Name: Player
--- !u!4 &400
Transform:
  m_LocalPosition: {x: 0, y: 0, z: 0}
--- !u!114 &800 stripped
MonoBehaviour:
  m_Enabled: 1
`

func TestParseScenarioThreeMultiDoc(t *testing.T) {
	classes, err := Parse(scenarioThreeText, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(classes))
	}

	wantIDs := []int32{1, 4, 114}
	wantAnchors := []string{"100", "400", "800"}
	wantExtra := []string{"", "", "stripped"}
	for i, c := range classes {
		if c.ClassID != wantIDs[i] {
			t.Errorf("class[%d].ClassID = %d, want %d", i, c.ClassID, wantIDs[i])
		}
		if c.Anchor != wantAnchors[i] {
			t.Errorf("class[%d].Anchor = %q, want %q", i, c.Anchor, wantAnchors[i])
		}
		if c.ExtraAnchorData != wantExtra[i] {
			t.Errorf("class[%d].ExtraAnchorData = %q, want %q", i, c.ExtraAnchorData, wantExtra[i])
		}
	}

	name, ok := classes[0].Properties.Get("m_Name")
	if !ok || name.Kind() != value.KindString || name.Str() != "Player" {
		t.Errorf("m_Name = %+v, want string Player", name)
	}

	pos, ok := classes[1].Properties.Get("m_LocalPosition")
	if !ok || pos.Kind() != value.KindObject {
		t.Fatalf("m_LocalPosition missing or not an object: %+v", pos)
	}
	for _, axis := range []string{"x", "y", "z"} {
		v, ok := pos.Object().Get(axis)
		if !ok || v.Kind() != value.KindInt || v.Int() != 0 {
			t.Errorf("m_LocalPosition.%s = %+v, want Int(0)", axis, v)
		}
	}

	enabled, ok := classes[2].Properties.Get("m_Enabled")
	if !ok || enabled.Kind() != value.KindInt || enabled.Int() != 1 {
		t.Errorf("m_Enabled = %+v, want Int(1)", enabled)
	}
}

const scenarioFiveText = `--- !u!1101 &500
PluginImporter:
  platformData:
  - first:
      Any:
    second: {}
`

func TestParseScenarioFiveInvertedScalar(t *testing.T) {
	classes, err := Parse(scenarioFiveText, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}

	platformData, ok := classes[0].Properties.Get("platformData")
	if !ok || platformData.Kind() != value.KindArray || len(platformData.Items()) != 1 {
		t.Fatalf("platformData missing or malformed: %+v", platformData)
	}

	entry := platformData.Items()[0]
	if entry.Kind() != value.KindObject {
		t.Fatalf("platformData[0] is not an object: %+v", entry)
	}

	first, ok := entry.Object().Get("first")
	if !ok || first.Kind() != value.KindObject {
		t.Fatalf("first missing or not an object: %+v", first)
	}
	any, ok := first.Object().Get("Any")
	if !ok || !any.IsNull() {
		t.Errorf("Any = %+v, want Null", any)
	}

	second, ok := entry.Object().Get("second")
	if !ok || second.Kind() != value.KindObject || second.Object().Len() != 0 {
		t.Errorf("second = %+v, want empty object", second)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	classes, err := Parse(scenarioThreeText, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	text, err := Write(classes, nil)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	roundTripped, err := Parse(text, nil)
	if err != nil {
		t.Fatalf("Parse(Write(...)) failed: %v\n--- written ---\n%s", err, text)
	}

	if len(roundTripped) != len(classes) {
		t.Fatalf("round-trip class count = %d, want %d", len(roundTripped), len(classes))
	}
	for i := range classes {
		a, b := classes[i], roundTripped[i]
		if a.ClassID != b.ClassID || a.Anchor != b.Anchor || a.ExtraAnchorData != b.ExtraAnchorData {
			t.Errorf("class[%d] header mismatch: %+v vs %+v", i, a, b)
		}
		if !a.Properties.Equal(b.Properties) {
			t.Errorf("class[%d] properties mismatch: %+v vs %+v", i, a.Properties, b.Properties)
		}
	}
}

func TestHeaderRejectsMalformed(t *testing.T) {
	classes, err := Parse("--- not a unity header\nFoo:\n  bar: 1\n", nil)
	if err != nil {
		t.Fatalf("Parse returned a fatal error for a single malformed document: %v", err)
	}
	if len(classes) != 0 {
		t.Fatalf("expected the malformed document to be dropped, got %d classes", len(classes))
	}
}

func TestParseBytesStripsUTF8BOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	data := append(bom, []byte(scenarioThreeText)...)

	classes, err := ParseBytes(data, nil)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(classes))
	}
	if classes[0].ClassID != 1 {
		t.Errorf("class[0].ClassID = %d, want 1 (BOM bytes must not leak into the header line)", classes[0].ClassID)
	}
}
