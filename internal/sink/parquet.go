package sink

import (
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const (
	// About parquet format: https://parquet.apache.org/documentation/latest/
	parquetRowGroupSize = 16 * 1024 * 1024 // 16M
)

// ParquetSink writes records as Row to a local parquet file.
type ParquetSink struct {
	filePath string
	fw       source.ParquetFile
	pw       *writer.ParquetWriter
	count    int
}

// NewParquetSink is constructor of ParquetSink
func NewParquetSink(filePath string) (*ParquetSink, error) {
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to create a parquet file: %s", filePath)
	}

	pw, err := writer.NewParquetWriter(fw, new(Row), 4)
	if err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "Fail to create parquet writer")
	}

	pw.RowGroupSize = parquetRowGroupSize
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	return &ParquetSink{filePath: filePath, fw: fw, pw: pw}, nil
}

// Write of ParquetSink
func (x *ParquetSink) Write(rec *models.Record) error {
	row, err := NewRow(rec)
	if err != nil {
		return err
	}

	if err := x.pw.Write(*row); err != nil {
		return errors.Wrap(err, "Parquet write error")
	}
	x.count++
	return nil
}

// Close of ParquetSink
func (x *ParquetSink) Close() error {
	logger.WithFields(logrus.Fields{
		"path":  x.filePath,
		"count": x.count,
	}).Debug("Closing parquet sink")

	defer x.fw.Close()

	if err := x.pw.WriteStop(); err != nil {
		return errors.Wrap(err, "Fail to WriteStop for parquet sink")
	}
	return nil
}
