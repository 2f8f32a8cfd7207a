package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionChunks(t *testing.T) {
	const mb = int64(1024 * 1024)

	t.Run("26MB dosya 10MB chunk ile 3 parçaya bölünür", func(t *testing.T) {
		chunks := PartitionChunks(26*mb, 10*mb)

		require.Len(t, chunks, 3)
		assert.Equal(t, 10*mb, chunks[0].Length())
		assert.Equal(t, 10*mb, chunks[1].Length())
		assert.Equal(t, 6*mb, chunks[2].Length())
	})

	t.Run("aralıklar bitişik ve çakışmasız", func(t *testing.T) {
		sizes := []int64{1, 99, 100, 101, 26 * mb, 10*mb - 1, 10 * mb}
		for _, size := range sizes {
			chunks := PartitionChunks(size, 10*mb)

			expected := (size + 10*mb - 1) / (10 * mb)
			require.Equal(t, int(expected), len(chunks), "size=%d", size)

			var total int64
			var prev int64
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				assert.Equal(t, prev, c.Start, "boşluk var: size=%d chunk=%d", size, i)
				assert.Greater(t, c.End, c.Start)
				prev = c.End
				total += c.Length()
			}
			assert.Equal(t, size, total, "toplam byte dosya boyutuna eşit olmalı")
			assert.Equal(t, size, chunks[len(chunks)-1].End)
		}
	})

	t.Run("boş veya geçersiz girişte chunk üretmez", func(t *testing.T) {
		assert.Nil(t, PartitionChunks(0, 10*mb))
		assert.Nil(t, PartitionChunks(100, 0))
		assert.Nil(t, PartitionChunks(-5, 10*mb))
	})

	t.Run("sınırlar yalnızca boyutlardan deterministik", func(t *testing.T) {
		a := PartitionChunks(26*mb, 10*mb)
		b := PartitionChunks(26*mb, 10*mb)
		assert.Equal(t, a, b)
	})
}
