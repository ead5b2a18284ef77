package digest

import "fmt"

// UnknownDigestError represents an error when a digest name is not in the
// registry. The closed set of names guards callers against silently picking
// up an unvetted primitive.
type UnknownDigestError string

// Error returns a formatted error message naming the unknown digest.
func (e UnknownDigestError) Error() string {
	return fmt.Sprintf("veil/digest: unknown digest %q", string(e))
}
