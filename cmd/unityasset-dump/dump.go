package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/saferwall/unityasset/bundle"
	"github.com/saferwall/unityasset/internal/log"
	"github.com/saferwall/unityasset/serializedfile"
	"github.com/saferwall/unityasset/value"
	"github.com/saferwall/unityasset/yaml"
	"github.com/spf13/cobra"
)

func newLogger() *log.Helper {
	logger := log.NewStdLogger(os.Stderr)
	level := log.LevelError
	if verbose {
		level = log.LevelDebug
	}
	return log.NewHelper(log.NewFilter(logger, log.FilterLevel(level)))
}

// sniffKind inspects a file's leading bytes/text to decide which of the
// three readers (bundle/serializedfile/yaml) applies, mirroring how a
// caller without reliable extensions would dispatch.
func sniffKind(data []byte) string {
	for _, sig := range []string{"UnityFS", "UnityWeb", "UnityRaw", "UnityArchive"} {
		if bytes.HasPrefix(data, []byte(sig+"\x00")) {
			return "bundle"
		}
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, "\r\n\t "), []byte("%YAML")) ||
		bytes.Contains(data[:min(len(data), 64)], []byte("--- !u!")) {
		return "yaml"
	}
	return "serializedfile"
}

func dumpFile(path string, cmd *cobra.Command) {
	logger := newLogger()
	logger.Infof("dumping %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("reading %s: %v", path, err)
		return
	}

	switch sniffKind(data) {
	case "bundle":
		dumpBundle(path, data, logger)
	case "yaml":
		dumpYAML(path, data, logger)
	default:
		dumpSerializedFile(path, data, logger)
	}
}

func dumpBundle(path string, data []byte, logger *log.Helper) {
	b, err := bundle.Parse(data, &bundle.Options{Logger: logger})
	if err != nil {
		logger.Errorf("%s: failed to parse AssetBundle: %v", path, err)
		return
	}

	fmt.Printf("\n%s: AssetBundle %s, %d nodes\n", path, b.Header.Signature, len(b.Nodes))
	if wantContainer {
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 2, ' ', 0)
		fmt.Fprintln(w, "name\tsize\tflags\tkind\t")
		for _, e := range b.Container() {
			kind := "resource"
			if e.Asset != nil {
				kind = "asset"
			}
			fmt.Fprintf(w, "%s\t%d\t0x%x\t%s\t\n", e.Name, e.Node.Size, e.Node.Flags, kind)
		}
		w.Flush()
	}
	if wantObjects {
		for _, e := range b.Container() {
			if e.Asset == nil {
				continue
			}
			dumpClasses(e.Name, classesOf(e.Asset, logger))
		}
	}
}

func dumpSerializedFile(path string, data []byte, logger *log.Helper) {
	sf, err := serializedfile.Parse(data, &serializedfile.Options{Logger: logger})
	if err != nil {
		logger.Errorf("%s: failed to parse SerializedFile: %v", path, err)
		return
	}

	fmt.Printf("\n%s: SerializedFile version %d, %d objects, %d externals\n",
		path, sf.Header.Version, len(sf.Objects), len(sf.Externals))
	if wantObjects {
		dumpClasses(path, classesOf(sf, logger))
	}
}

func dumpYAML(path string, data []byte, logger *log.Helper) {
	classes, err := yaml.ParseBytes(data, &yaml.Options{Logger: logger})
	if err != nil {
		logger.Errorf("%s: failed to parse YAML: %v", path, err)
		return
	}
	fmt.Printf("\n%s: %d YAML documents\n", path, len(classes))
	if wantObjects {
		dumpClasses(path, classes)
	}
}

func classesOf(sf *serializedfile.SerializedFile, logger *log.Helper) []*value.UnityClass {
	classes, err := sf.GetObjects()
	if err != nil {
		logger.Errorf("decoding objects: %v", err)
	}
	return classes
}

func dumpClasses(label string, classes []*value.UnityClass) {
	w := tabwriter.NewWriter(os.Stdout, 1, 1, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\nclass_id\tclass_name\tanchor\textra\t\n", label)
	for _, c := range classes {
		if c == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", c.ClassID, c.ClassName, c.Anchor, c.ExtraAnchorData)
	}
	w.Flush()

	if wantJSON {
		for _, c := range classes {
			if c == nil || c.Properties == nil {
				continue
			}
			fmt.Printf("%s: %s\n", c.String(), prettyPrint(toInterface(value.Obj(c.Properties))))
		}
	}
}

// toInterface converts a UnityValue into plain Go values (map/slice/
// primitives) for JSON printing; the value package itself stays free of
// any encoding concern.
func toInterface(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.Bool()
	case value.KindInt:
		return v.Int()
	case value.KindFloat:
		return v.Float()
	case value.KindString:
		return v.Str()
	case value.KindArray:
		items := v.Items()
		out := make([]interface{}, len(items))
		for i, it := range items {
			out[i] = toInterface(it)
		}
		return out
	case value.KindObject:
		o := v.Object()
		out := make(map[string]interface{}, o.Len())
		for _, k := range o.Keys() {
			fv, _ := o.Get(k)
			out[k] = toInterface(fv)
		}
		return out
	default:
		return nil
	}
}
