package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("TailCommitConsume", func(t *testing.T) {
		q := newQueue(4)
		copy(q.tail(3), []byte{1, 2, 3})
		q.commit(3)
		assert.Equal(t, 3, q.Len())
		assert.Equal(t, []byte{1, 2, 3}, q.Bytes())

		q.consume(1)
		assert.Equal(t, []byte{2, 3}, q.Bytes())
		q.consume(2)
		assert.Zero(t, q.Len())
		assert.Zero(t, q.off, "an empty queue rewinds")
	})

	t.Run("PartialCommit", func(t *testing.T) {
		q := newQueue(0)
		p := q.tail(8)
		require.Len(t, p, 8)
		copy(p, []byte{9, 9})
		q.commit(2)
		assert.Equal(t, []byte{9, 9}, q.Bytes())
	})

	t.Run("CompactsBeforeGrowing", func(t *testing.T) {
		q := newQueue(8)
		copy(q.tail(8), []byte{1, 2, 3, 4, 5, 6, 7, 8})
		q.commit(8)
		q.consume(6)

		copy(q.tail(4), []byte{9, 10, 11, 12})
		q.commit(4)
		assert.Equal(t, []byte{7, 8, 9, 10, 11, 12}, q.Bytes())
		assert.Zero(t, q.off)
		assert.Equal(t, 8, cap(q.b))
	})

	t.Run("Grows", func(t *testing.T) {
		q := newQueue(2)
		copy(q.tail(2), []byte{1, 2})
		q.commit(2)
		copy(q.tail(100), make([]byte, 100))
		q.commit(100)
		assert.Equal(t, 102, q.Len())
		assert.Equal(t, []byte{1, 2}, q.Bytes()[:2])
	})
}
