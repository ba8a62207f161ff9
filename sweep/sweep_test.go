package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecades(t *testing.T) {
	s, err := Generate("decades")
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 10000, 100000, 1000000, 10000000}, s)
}

func TestHalfDecades(t *testing.T) {
	s, err := Generate("half-decades")
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 3162, 10000, 31623, 100000, 316228, 1000000, 3162278, 10000000}, s)
}

func TestAllSweepsIncreasing(t *testing.T) {
	for _, name := range Generators() {
		s, err := Generate(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, s, name)
		for i := 1; i < len(s); i++ {
			assert.Greater(t, s[i], s[i-1], "%s[%d]", name, i)
		}
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{10, 100, 1000}, Range(10, 1000))
	assert.Equal(t, []int{5}, Range(5, 49))
	assert.Empty(t, Range(10, 9))
}

func TestGenerateUnknown(t *testing.T) {
	_, err := Generate("nope")
	assert.Error(t, err)
}
