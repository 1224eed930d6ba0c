package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBucket(t *testing.T) {
	tests := []struct {
		label  string
		want   Bucket
		wantOK bool
	}{
		{"system", BucketSystem, true},
		{"development", BucketDevelopment, true},
		{"graphics", BucketGraphics, true},
		{"other", BucketOther, true},
		{"", BucketOther, false},
		{"games", BucketOther, false},
		{"System", BucketOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseBucket(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, NormalizeBucket(tt.label))
		})
	}
}

func TestBucketsOrder(t *testing.T) {
	var names []string
	for _, b := range Buckets() {
		names = append(names, b.String())
	}
	assert.Equal(t, []string{"system", "development", "graphics", "other"}, names)
}

func TestBucketText(t *testing.T) {
	text, err := BucketGraphics.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "graphics", string(text))

	var b Bucket
	assert.NoError(t, b.UnmarshalText([]byte("development")))
	assert.Equal(t, BucketDevelopment, b)
	assert.Error(t, b.UnmarshalText([]byte("games")))
}
