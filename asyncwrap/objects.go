package asyncwrap

import (
	"context"

	"github.com/saferwall/unityasset/serializedfile"
	"github.com/saferwall/unityasset/value"
)

// DecodeObjects decodes every object in sf concurrently, bounded by
// opts.Concurrency, and gathers the results in file order — the concrete
// instance of spec §5(b) ("parallelize independent object decodes within
// one SerializedFile using a bounded-concurrency scheme"). A per-object
// decode failure is reported in the matching slot of the returned error
// slice; sibling objects still decode, matching the synchronous
// GetObjects()'s error handling.
func DecodeObjects(ctx context.Context, sf *serializedfile.SerializedFile, opts *Options) ([]*value.UnityClass, []error) {
	return Map(ctx, sf.NumObjects(), opts, func(_ context.Context, i int) (*value.UnityClass, error) {
		return sf.DecodeObjectAt(i)
	})
}
