package adaptor

import (
	"compress/gzip"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EncoderFactory is constructor of Encoder
type EncoderFactory func(w io.Writer) Encoder

// Encoder writes records to w in its own format.
type Encoder interface {
	Encode(v interface{}) error
	Close() error
	Size() int64
}

type msgpackGzipEncoder struct {
	gw      *gzip.Writer
	enc     *msgpack.Encoder
	counter *sizeCounter
}

func (x *msgpackGzipEncoder) Encode(v interface{}) error { return x.enc.Encode(v) }
func (x *msgpackGzipEncoder) Close() error               { return x.gw.Close() }
func (x *msgpackGzipEncoder) Size() int64                { return x.counter.wroteSize }

// NewMsgpackEncoder returns Encoder of gzip compressed msgpack stream.
func NewMsgpackEncoder(w io.Writer) Encoder {
	gw := gzip.NewWriter(w)
	counter := &sizeCounter{wr: gw}
	return &msgpackGzipEncoder{
		gw:      gw,
		counter: counter,
		enc:     msgpack.NewEncoder(counter),
	}
}

// sizeCounter counts uncompressed size.
type sizeCounter struct {
	wr        io.Writer
	wroteSize int64
}

func (x *sizeCounter) Write(p []byte) (int, error) {
	x.wroteSize += int64(len(p))
	return x.wr.Write(p)
}
