package wire

import (
	"bytes"
	"io"
	"math/rand/v2"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// halfWriter accepts only half of every write.
type halfWriter struct {
	bytes.Buffer
}

func (w *halfWriter) Write(p []byte) (int, error) {
	return w.Buffer.Write(p[:len(p)/2])
}

// --- Encoder Test Suite ---

type EncoderTestSuite struct {
	suite.Suite
	buf     *bytes.Buffer
	encoder *Encoder[msg]
}

func (s *EncoderTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.encoder, _ = NewEncoder[msg](s.buf, msgs)
}

func (s *EncoderTestSuite) TestConstructors() {
	s.T().Run("NilWriter", func(t *testing.T) {
		_, err := NewEncoder[msg](nil, msgs)
		assert.ErrorIs(t, err, ErrNilIO)
	})
}

func (s *EncoderTestSuite) TestEncode() {
	s.Require().NoError(s.encoder.Encode(&Ping{}))
	s.Require().NoError(s.encoder.Encode(&Triple{A: 10, B: 20, C: 65}))
	s.Equal([]byte{0, 1, 0, 0, 0, 10, 0, 0, 0, 20, 65}, s.buf.Bytes())
	s.EqualValues(11, s.encoder.Count())
	s.NoError(s.encoder.Err())
}

func (s *EncoderTestSuite) TestEncodeErrorDoesNotPoison() {
	s.ErrorIs(s.encoder.Encode(nil), ErrUnknownVariant)
	s.Zero(s.buf.Len())
	s.NoError(s.encoder.Err())

	s.NoError(s.encoder.Encode(&Ping{}))
	s.Equal([]byte{0}, s.buf.Bytes())
}

func (s *EncoderTestSuite) TestShortWriteIsSticky() {
	w := &halfWriter{}
	enc, err := NewEncoder[msg](w, msgs)
	s.Require().NoError(err)

	s.ErrorIs(enc.Encode(&Triple{A: 1, B: 2, C: 3}), io.ErrShortWrite)
	s.EqualValues(5, enc.Count())
	s.ErrorIs(enc.Encode(&Ping{}), io.ErrShortWrite)
	s.EqualValues(5, enc.Count())
}

func TestEncoderTestSuite(t *testing.T) {
	suite.Run(t, new(EncoderTestSuite))
}

// --- Decoder Test Suite ---

type DecoderTestSuite struct {
	suite.Suite
}

func (s *DecoderTestSuite) TestConstructors() {
	s.T().Run("NilReader", func(t *testing.T) {
		_, err := NewDecoder[msg](nil, msgs)
		assert.ErrorIs(t, err, ErrNilIO)
	})
}

func (s *DecoderTestSuite) TestRoundTrip() {
	r := rand.New(rand.NewPCG(7, 8))
	var buf bytes.Buffer
	enc, err := NewEncoder[frame](&buf, frames)
	s.Require().NoError(err)

	var want []frame
	for i := 0; i < 100; i++ {
		f := frame(randomBatch(r))
		if i%4 == 0 {
			f = &Blob{Data: []byte{byte(i), byte(i + 1)}}
		}
		s.Require().NoError(enc.Encode(f))
		want = append(want, f)
	}
	total := int64(buf.Len())

	// One byte per Read exercises every partial path.
	dec, err := NewDecoder[frame](iotest.OneByteReader(&buf), frames)
	s.Require().NoError(err)
	for _, w := range want {
		got, err := dec.Decode()
		s.Require().NoError(err)
		s.Equal(w, got)
	}

	_, err = dec.Decode()
	s.ErrorIs(err, io.EOF)
	s.True(dec.IsEOF())
	s.Equal(total, dec.Count())
	s.Equal(total, enc.Count())
}

func (s *DecoderTestSuite) TestNeverReadsPastMessage() {
	first, _ := Marshal[msg](msgs, &Triple{A: 1, B: 2, C: 3})
	src := bytes.NewReader(append(first, 0, 0xEE))

	dec, err := NewDecoder[msg](src, msgs)
	s.Require().NoError(err)
	m, err := dec.Decode()
	s.Require().NoError(err)
	s.Equal(&Triple{A: 1, B: 2, C: 3}, m)
	s.Equal(2, src.Len())
	s.Zero(dec.Buffered())
}

func (s *DecoderTestSuite) TestTruncatedMessage() {
	data, _ := Marshal[msg](msgs, &Triple{A: 1, B: 2, C: 3})
	dec, _ := NewDecoder[msg](bytes.NewReader(data[:6]), msgs)

	_, err := dec.Decode()
	s.ErrorIs(err, io.ErrUnexpectedEOF)
	s.False(dec.IsEOF())
}

func (s *DecoderTestSuite) TestInvalidIsSticky() {
	dec, _ := NewDecoder[msg](bytes.NewReader([]byte{255, 0}), msgs)

	_, err := dec.Decode()
	s.ErrorIs(err, ErrInvalidMessage)
	_, err = dec.Decode()
	s.ErrorIs(err, ErrInvalidMessage)
	s.ErrorIs(dec.Err(), ErrInvalidMessage)
}

func (s *DecoderTestSuite) TestReadErrorIsSticky() {
	dec, _ := NewDecoder[msg](iotest.ErrReader(io.ErrClosedPipe), msgs)

	_, err := dec.Decode()
	s.ErrorIs(err, io.ErrClosedPipe)
	_, err = dec.Decode()
	s.ErrorIs(err, io.ErrClosedPipe)
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}

func TestMemStream(t *testing.T) {
	s := NewMemStream()
	buf := make([]byte, 4)

	_, err := s.Read(buf)
	assert.ErrorIs(t, err, ErrWouldBlock)

	s.Feed([]byte{1, 2, 3, 4, 5})
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, s.Pending())

	s.CloseWrite()
	n, _ = s.Read(buf)
	assert.Equal(t, 1, n)
	_, err = s.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 4, s.Reads())

	require.NoError(t, s.Close())
	_, err = s.Read(buf)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	_, err = s.Write(buf)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
