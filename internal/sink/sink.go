package sink

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/internal/adaptor"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

var logger = internal.Logger

// Kind is output format of Sink
type Kind string

const (
	// KindJSON writes JSON lines
	KindJSON Kind = "json"
	// KindMsgpack writes gzip compressed msgpack stream
	KindMsgpack Kind = "msgpack"
	// KindParquet writes parquet file
	KindParquet Kind = "parquet"
	// KindSQLite writes sqlite database
	KindSQLite Kind = "sqlite"
)

// Kinds is list of supported kinds.
var Kinds = []Kind{KindJSON, KindMsgpack, KindParquet, KindSQLite}

// Ext returns file extension of the kind.
func (x Kind) Ext() string {
	switch x {
	case KindJSON:
		return "json"
	case KindMsgpack:
		return "msg.gz"
	case KindParquet:
		return "parquet"
	case KindSQLite:
		return "sqlite"
	}
	return ""
}

// Sink writes decoded records.
type Sink interface {
	Write(rec *models.Record) error
	Close() error
}

// FileName generates unique output file name.
func FileName(kind Kind, now time.Time) string {
	return now.UTC().Format("20060102_150405_") + strings.Replace(uuid.New().String(), "-", "_", -1) + "." + kind.Ext()
}

// New creates Sink of kind writing to path. If path is a directory, a new
// file is created in it. "-" means standard output and is available for json
// and msgpack.
func New(kind Kind, path string) (Sink, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, FileName(kind, time.Now()))
	}
	logger.WithField("kind", kind).WithField("path", path).Debug("Creating sink")

	switch kind {
	case KindJSON, KindMsgpack:
		w, err := openWriter(path)
		if err != nil {
			return nil, err
		}
		if kind == KindJSON {
			return NewJSONSink(w), nil
		}
		return NewEncoderSink(w, adaptor.NewMsgpackEncoder), nil

	case KindParquet:
		if path == "-" {
			return nil, errors.New("parquet sink requires file path")
		}
		return NewParquetSink(path)

	case KindSQLite:
		if path == "-" {
			return nil, errors.New("sqlite sink requires file path")
		}
		return NewSQLiteSink(path)
	}

	return nil, errors.Errorf("Unsupported sink kind: %s", kind)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openWriter(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	fd, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to create output file: %s", path)
	}
	return fd, nil
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	w   io.WriteCloser
	buf *bufio.Writer
	enc *json.Encoder
}

// NewJSONSink is constructor of JSONSink
func NewJSONSink(w io.WriteCloser) *JSONSink {
	buf := bufio.NewWriter(w)
	return &JSONSink{w: w, buf: buf, enc: json.NewEncoder(buf)}
}

// Write of JSONSink encodes set fields of rec in field order.
func (x *JSONSink) Write(rec *models.Record) error {
	if err := x.enc.Encode(rec); err != nil {
		return errors.Wrapf(err, "Fail to encode record at line %d", rec.Line)
	}
	return nil
}

// Close flushes buffer and closes output.
func (x *JSONSink) Close() error {
	if err := x.buf.Flush(); err != nil {
		x.w.Close()
		return errors.Wrap(err, "Fail to flush JSON sink")
	}
	return x.w.Close()
}

// EncoderSink writes set fields of records as maps by adaptor.Encoder.
type EncoderSink struct {
	w   io.WriteCloser
	enc adaptor.Encoder
}

// NewEncoderSink is constructor of EncoderSink
func NewEncoderSink(w io.WriteCloser, newEncoder adaptor.EncoderFactory) *EncoderSink {
	return &EncoderSink{w: w, enc: newEncoder(w)}
}

// Write of EncoderSink
func (x *EncoderSink) Write(rec *models.Record) error {
	if err := x.enc.Encode(rec.Map()); err != nil {
		return errors.Wrapf(err, "Fail to encode record at line %d", rec.Line)
	}
	return nil
}

// Close of EncoderSink
func (x *EncoderSink) Close() error {
	logger.WithField("size", x.enc.Size()).Debug("Closing encoder sink")
	if err := x.enc.Close(); err != nil {
		x.w.Close()
		return errors.Wrap(err, "Fail to close encoder")
	}
	return x.w.Close()
}
