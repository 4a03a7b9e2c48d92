package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	names := []string{"Monster", "DropItem", "Quality", "DropTable"}

	assert.Equal(t, []string{"DropItem"}, Suggest("DropItm", names, 3))
	assert.Equal(t, []string{"Monster"}, Suggest("monster", names, 3))
	assert.Empty(t, Suggest("Vector3", names, 3))
}

func TestSuggest_Limit(t *testing.T) {
	names := []string{"DropItemA", "DropItemB", "DropItemC"}

	got := Suggest("DropItem", names, 2)
	assert.Equal(t, []string{"DropItemA", "DropItemB"}, got)
}

func TestSuggest_NoLimit(t *testing.T) {
	assert.Nil(t, Suggest("DropItem", []string{"DropItem1"}, 0))
	assert.Nil(t, Suggest("", []string{"DropItem1"}, 3))
}
