// Package objectkey generates and validates the hierarchical storage keys
// used for family media. Keys encode tenant ownership directly in the path:
//
//	families/{familyID}/babies/{babyID}/moments/{segment}/original
//
// Validate is the sole predicate standing between an authorized caller and
// another family's objects, so it is kept deliberately simple.
package objectkey

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	familiesPrefix = "families/"
	keySuffix      = "original"
)

// safeSegment matches caller-supplied idempotency tokens that may be used
// verbatim as a key segment.
var safeSegment = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// IsSafeSegment reports whether s may appear as a single path segment in an
// object key (family and baby identifiers included).
func IsSafeSegment(s string) bool {
	return safeSegment.MatchString(s)
}

// Generate produces a fresh object key for media belonging to the given
// family and baby. If uploadID is a syntactically safe token it becomes the
// moment segment, making retried upload requests map to the same key;
// otherwise a collision-resistant segment is generated from the current
// time and random bits. Photos and videos share the same key shape.
func Generate(familyID, babyID, uploadID string) string {
	segment := uploadID
	if !IsSafeSegment(segment) {
		segment = randomSegment()
	}
	return fmt.Sprintf("%s%s/babies/%s/moments/%s/%s", familiesPrefix, familyID, babyID, segment, keySuffix)
}

func randomSegment() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New())
}

// Validate reports whether key belongs to the given family. It is a pure
// prefix check on the verified tenant segment; keys containing a ".." path
// element are always rejected.
func Validate(key, familyID string) bool {
	if familyID == "" || !IsSafeSegment(familyID) {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return false
		}
	}
	return strings.HasPrefix(key, familiesPrefix+familyID+"/")
}
