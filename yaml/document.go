package yaml

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/saferwall/unityasset/internal/log"
)

// Options configures the reader/writer, mirroring the teacher's pe.Options
// nil-means-defaults convention.
type Options struct {
	Logger *log.Helper

	// LineEnding is used by Write; defaults to "\n".
	LineEnding string
}

func (o *Options) logger() *log.Helper {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *Options) lineEnding() string {
	if o == nil || o.LineEnding == "" {
		return "\n"
	}
	return o.LineEnding
}

// headerPattern lexes a document header line: `--- !u!<class_id> &<anchor>
// [extra_tokens]`, per spec §4.9.
var headerPattern = regexp.MustCompile(`^---\s+!u!(\d+)\s+&(\S+)(?:\s+(.*?))?\s*$`)

// rawDocument is one `---`-delimited section of raw input, split before any
// YAML-level parsing, per spec §4.9 ("split input at ^--- lines").
type rawDocument struct {
	ClassID         int32
	Anchor          string
	ExtraAnchorData string
	Body            string
	Line            int
}

// splitDocuments skips the `%YAML`/`%TAG` directive lines without
// interpreting them and returns each `---`-delimited document with its
// header line lexed. A malformed header is reported as a warning and its
// document is dropped; other documents still parse, per spec §7's
// per-document YAML error propagation.
func splitDocuments(text string) ([]rawDocument, []*ParseError) {
	lines := strings.Split(text, "\n")

	var docs []rawDocument
	var warnings []*ParseError
	var cur *rawDocument
	var body []string

	flush := func() {
		if cur != nil {
			cur.Body = strings.Join(body, "\n")
			docs = append(docs, *cur)
		}
		cur = nil
		body = nil
	}

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(trimmed, "%"):
			// %YAML / %TAG directives: skipped; their content is not read
			// or checked.
			continue
		case strings.HasPrefix(trimmed, "---"):
			flush()
			m := headerPattern.FindStringSubmatch(trimmed)
			if m == nil {
				warnings = append(warnings, &ParseError{Message: "malformed document header " + strconv.Quote(trimmed), Line: i + 1})
				continue
			}
			classID, err := strconv.ParseInt(m[1], 10, 32)
			if err != nil {
				warnings = append(warnings, &ParseError{Message: "invalid class id in header", Line: i + 1})
				continue
			}
			cur = &rawDocument{ClassID: int32(classID), Anchor: m[2], ExtraAnchorData: m[3], Line: i + 1}
		default:
			if cur != nil {
				body = append(body, line)
			}
		}
	}
	flush()
	return docs, warnings
}
