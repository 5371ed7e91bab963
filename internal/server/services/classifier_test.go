package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassifyEmptyHostname tests that sessions without a hostname are Unknown
func TestClassifyEmptyHostname(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, CategoryUnknown, c.Classify(""))
	assert.Equal(t, CategoryUnknown, c.Classify("   "))
}

func TestClassifyKnownCategories(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, "YouTube", c.Classify("youtube.com"))
	assert.Equal(t, "YouTube", c.Classify("www.youtube.com"))
	assert.Equal(t, "YouTube", c.Classify("r3---sn-4g5e6nsz.googlevideo.com"))
	assert.Equal(t, "Netflix", c.Classify("api.netflix.com"))
	assert.Equal(t, "Social Media", c.Classify("static.xx.fbcdn.net"))
	assert.Equal(t, "Web Browsing", c.Classify("www.google.com"))
}

// TestClassifySuffixSemantics tests exact and subdomain matching boundaries
func TestClassifySuffixSemantics(t *testing.T) {
	c := DefaultClassifier()

	// Exact match and dotted subdomain match
	assert.Equal(t, "YouTube", c.Classify("youtube.com"))
	assert.Equal(t, "YouTube", c.Classify("m.youtube.com"))

	// A plain string suffix without the dot boundary must not match
	assert.Equal(t, CategoryOther, c.Classify("notyoutube.com"))
}

func TestClassifyNormalization(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, "YouTube", c.Classify("WWW.YouTube.COM"))
	assert.Equal(t, "YouTube", c.Classify("  youtube.com  "))
}

// TestClassifyWhitelist tests that OS update hosts hit the exclusion sentinel
func TestClassifyWhitelist(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, CategoryExcluded, c.Classify("windowsupdate.microsoft.com"))
	assert.Equal(t, CategoryExcluded, c.Classify("download.windowsupdate.com"))
	assert.Equal(t, CategoryExcluded, c.Classify("swcdn.apple.com"))
	assert.Equal(t, CategoryExcluded, c.Classify("security.ubuntu.com"))

	assert.True(t, c.IsWhitelisted("windowsupdate.microsoft.com"))
	assert.False(t, c.IsWhitelisted("youtube.com"))
	assert.False(t, c.IsWhitelisted(""))
}

// TestWhitelistPrecedence tests that exclusion wins even when a category rule also matches
func TestWhitelistPrecedence(t *testing.T) {
	c := NewClassifier(&Taxonomy{
		Whitelist: []string{"updates.example.com"},
		Categories: []CategoryRule{
			{Name: "Example", Domains: []string{"example.com"}},
		},
	})

	assert.Equal(t, CategoryExcluded, c.Classify("updates.example.com"))
	assert.Equal(t, "Example", c.Classify("www.example.com"))
}

// TestClassifyCategoryOrder tests that the first declared category wins
func TestClassifyCategoryOrder(t *testing.T) {
	c := NewClassifier(&Taxonomy{
		Categories: []CategoryRule{
			{Name: "First", Domains: []string{"shared.example.com"}},
			{Name: "Second", Domains: []string{"example.com"}},
		},
	})

	assert.Equal(t, "First", c.Classify("shared.example.com"))
	assert.Equal(t, "Second", c.Classify("other.example.com"))
}

func TestClassifyOther(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, CategoryOther, c.Classify("internal.corp.lan"))
	assert.Equal(t, CategoryOther, c.Classify("example.org"))
}

// TestClassifyIdempotent tests that repeated classification is stable
func TestClassifyIdempotent(t *testing.T) {
	c := DefaultClassifier()

	hosts := []string{"", "youtube.com", "windowsupdate.microsoft.com", "example.org"}
	for _, h := range hosts {
		first := c.Classify(h)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(h))
		}
	}
}
