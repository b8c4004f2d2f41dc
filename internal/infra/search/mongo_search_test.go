package search

import (
	"regexp"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Mongoの$regex + $options:"i" と同じ意味をGoのregexpで確認する
func matches(t *testing.T, query, name string) bool {
	t.Helper()
	re, err := regexp.Compile("(?i)" + namePattern(query))
	require.NoError(t, err)
	return re.MatchString(name)
}

func TestNameFilter_Shape(t *testing.T) {
	f := nameFilter("sho")

	inner, ok := f["name"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "sho", inner["$regex"])
	assert.Equal(t, "i", inner["$options"])
}

func TestNamePattern_CaseInsensitiveSubstring(t *testing.T) {
	assert.True(t, matches(t, "sho", "Shoes"))
	assert.True(t, matches(t, "SHO", "Running shoes"))
	assert.False(t, matches(t, "sho", "Bathroom"))
}

func TestNamePattern_EscapesRegex(t *testing.T) {
	// 正規表現のメタ文字は文字そのものとして一致させる
	assert.False(t, matches(t, "s.o", "Shoes"))
	assert.True(t, matches(t, "c++", "C++ book"))
	assert.True(t, matches(t, "(new)", "Hat (new)"))
	assert.False(t, matches(t, ".*", "Hat"))
}

func TestDocumentRoundTrip(t *testing.T) {
	p := model.Product{ID: 7, Name: "Shoes", Price: 5000, CategoryID: 2}
	assert.Equal(t, p, toDocument(p).toProduct())
}

var _ repo.ProductSearcher = (*MongoProductSearch)(nil)
