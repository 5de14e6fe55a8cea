// Package export saves exported blobs on behalf of the console. Saving is a
// view-layer capability injected at the call site, never a store concern: the
// store hands back bytes and the sink decides where they land.
package export

import (
	"context"
	"strings"
)

// Sink writes one named blob somewhere durable.
type Sink interface {
	// Save writes data under name and returns the destination the user can
	// find it at (a file path or object URL).
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// IsS3 reports whether dest names an S3 object (s3://bucket/key).
func IsS3(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}
