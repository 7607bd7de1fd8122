package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagDealsEveryShapeOncePerBag(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(5)))

	for bag := 0; bag < 20; bag++ {
		seen := make(map[ShapeKind]int, ShapeCount)
		for i := 0; i < ShapeCount; i++ {
			seen[b.Next()]++
		}
		assert.Len(t, seen, ShapeCount, "bag %d", bag)
		for kind, n := range seen {
			assert.Equal(t, 1, n, "bag %d: %s dealt %d times", bag, kind, n)
		}
	}
}

func TestUniformCoversAllShapes(t *testing.T) {
	u := NewUniform(rand.New(rand.NewSource(1)))

	seen := make(map[ShapeKind]bool)
	for i := 0; i < 500; i++ {
		k := u.Next()
		require.True(t, k.Valid())
		seen[k] = true
	}
	assert.Len(t, seen, ShapeCount)
}

func TestRandomizerSameSeedSameSequence(t *testing.T) {
	for _, kind := range []RandomizerKind{RandomizerUniform, RandomizerBag} {
		a, err := NewRandomizer(kind, rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		b, err := NewRandomizer(kind, rand.New(rand.NewSource(99)))
		require.NoError(t, err)

		for i := 0; i < 100; i++ {
			require.Equal(t, a.Next(), b.Next(), "%s draw %d", kind, i)
		}
	}
}

func TestNewRandomizerUnknown(t *testing.T) {
	_, err := NewRandomizer("weighted", rand.New(rand.NewSource(1)))
	assert.ErrorContains(t, err, "weighted")
}

func TestParseShapeKind(t *testing.T) {
	tests := []struct {
		in   string
		want ShapeKind
		ok   bool
	}{
		{"I", ShapeI, true},
		{"t", ShapeT, true},
		{" z ", ShapeZ, true},
		{"X", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseShapeKind(tc.in)
		assert.Equal(t, tc.ok, ok, "ParseShapeKind(%q)", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), got.String())
		}
	}

	assert.Equal(t, "?", ShapeKind(12).String())
}
