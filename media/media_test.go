package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	cases := map[string]string{
		"gallery/abc.webp":  "gallery/abc.webp",
		"/gallery/abc.webp": "gallery/abc.webp",
		"https://bucket.oss-ap-south-1.aliyuncs.com/gallery/abc.webp": "gallery/abc.webp",
		"  proofs/p1.png ": "proofs/p1.png",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ObjectKey(in), "ref %q", in)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "https://oss-ap-south-1.aliyuncs.com", normalizeEndpoint("oss-ap-south-1.aliyuncs.com"))
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint("http://localhost:9000"))
	assert.Equal(t, "", normalizeEndpoint(""))
}
