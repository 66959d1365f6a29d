package abtest

import (
	"hash/fnv"
	"time"
)

// AssignVariant maps a user to exactly one variant of the test, or nil when
// the user falls outside the target population or the test is inactive. The
// mapping is a pure function of (test id, user id): the same user always
// lands on the same variant for the test's whole duration.
func AssignVariant(test *ABTest, userID string, now time.Time) *Variant {
	if test == nil || len(test.Variants) == 0 || !test.IsActive(now) {
		return nil
	}

	bucket := hashBucket(test.ID.Hex() + ":" + userID)

	// First gate: is this user in the test population at all?
	if test.TrafficPercent < 100 && int(bucket%100) >= test.TrafficPercent {
		return nil
	}

	// Second gate: even split across variants
	idx := int(bucket/100) % len(test.Variants)
	return &test.Variants[idx]
}

func hashBucket(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}
