package wire

import "sync"

// encodeBufSize covers most messages. Slices grown past maxPooledBuf are
// dropped instead of pooled.
const (
	encodeBufSize = 512
	maxPooledBuf  = 64 * 1024
)

// encodePool reuses scratch buffers for Conn.Send and Encoder.Encode.
var encodePool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, encodeBufSize)
		return &b
	},
}

func getEncodeBuf() *[]byte {
	bp := encodePool.Get().(*[]byte)
	*bp = (*bp)[:0]
	return bp
}

func putEncodeBuf(bp *[]byte) {
	if cap(*bp) > maxPooledBuf {
		return
	}
	encodePool.Put(bp)
}
