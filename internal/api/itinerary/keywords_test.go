package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeywords(t *testing.T) {
	t.Run("known labels translated in order", func(t *testing.T) {
		assert.Equal(t, []string{"park", "beach"}, MapKeywords([]string{"Parcuri", "Plaje"}))
	})

	t.Run("unknown labels dropped", func(t *testing.T) {
		assert.Equal(t, []string{"museum"}, MapKeywords([]string{"XYZ", "Muzee și galerii de artă"}))
	})

	t.Run("empty and nil", func(t *testing.T) {
		assert.Empty(t, MapKeywords(nil))
		assert.Empty(t, MapKeywords([]string{"nothing", "here"}))
	})

	t.Run("shared categories kept per label", func(t *testing.T) {
		got := MapKeywords([]string{"Pub-uri cu muzică live", "Baruri cu jocuri de societate"})
		assert.Equal(t, []string{"bar", "bar"}, got)
	})

	t.Run("labels are matched exactly", func(t *testing.T) {
		assert.Empty(t, MapKeywords([]string{"parcuri", " Parcuri"}))
	})
}

func TestKeywordTable(t *testing.T) {
	assert.Len(t, keywordCategories, 40)
	assert.True(t, KnownKeyword("Cascade"))
	assert.False(t, KnownKeyword("Waterfalls"))
	for label, category := range keywordCategories {
		assert.NotEmpty(t, label)
		assert.NotEmpty(t, category, "label %q", label)
	}
}

func TestDroppedKeywords(t *testing.T) {
	assert.Equal(t, []string{"XYZ", "parcuri"}, droppedKeywords([]string{"XYZ", "Parcuri", "parcuri"}))
	assert.Empty(t, droppedKeywords([]string{"Plaje"}))
	assert.Empty(t, droppedKeywords(nil))
}
