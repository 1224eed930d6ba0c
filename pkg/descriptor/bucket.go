package descriptor

import (
	"fmt"
)

// Bucket is one of the four package categories of a manifest.
type Bucket int

const (
	BucketSystem Bucket = iota
	BucketDevelopment
	BucketGraphics
	BucketOther
)

// Buckets returns every bucket in flatten order.
func Buckets() []Bucket {
	return []Bucket{BucketSystem, BucketDevelopment, BucketGraphics, BucketOther}
}

func (b Bucket) String() string {
	switch b {
	case BucketSystem:
		return "system"
	case BucketDevelopment:
		return "development"
	case BucketGraphics:
		return "graphics"
	case BucketOther:
		return "other"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// ParseBucket maps a label to its bucket. ok is false for anything but the
// four known labels.
func ParseBucket(label string) (b Bucket, ok bool) {
	for _, candidate := range Buckets() {
		if candidate.String() == label {
			return candidate, true
		}
	}
	return BucketOther, false
}

// NormalizeBucket resolves an externally supplied label. Empty and
// unrecognized labels fold into BucketOther instead of being rejected.
func NormalizeBucket(label string) Bucket {
	b, _ := ParseBucket(label)
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, ok := ParseBucket(string(text))
	if !ok {
		return fmt.Errorf("unknown bucket %q", string(text))
	}
	*b = parsed
	return nil
}
