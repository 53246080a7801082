// Package identity derives stable, deterministic identities for freshly
// sighted tracked objects from their bounding box coordinates.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/avtrejo/corridor-counter/internal/geometry"
)

// Fingerprint returns an 8-character deterministic identity for a box seen
// for the first time. It is derived from a hash of the box's textual
// coordinates, exactly as the reference tracker derives a car's id from
// `hashlib.md5(str(bbox).encode()).hexdigest()[:8]`.
//
// This MUST NOT be treated as a cryptographic identifier — it is a stable
// fingerprint, not a security primitive. Any deterministic 8-character
// fingerprint would satisfy the spec; md5 is used here purely because it's
// a convenient fixed-width bit mixer available in the standard library.
func Fingerprint(b geometry.Box) string {
	text := fmt.Sprintf("[%g, %g, %g, %g]", b.X, b.Y, b.W, b.H)
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])[:8]
}
