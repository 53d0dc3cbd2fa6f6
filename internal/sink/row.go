package sink

import (
	"encoding/json"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

// Row is flat form of a record for table formats (parquet and sqlite).
// Record has all set fields as JSON object.
type Row struct {
	Line      int64  `parquet:"name=line, type=INT64" json:"line"`
	EventType string `parquet:"name=event_type, type=UTF8, encoding=PLAIN_DICTIONARY" json:"event_type"`
	Version   string `parquet:"name=version, type=UTF8, encoding=PLAIN_DICTIONARY" json:"version"`
	EventTime int64  `parquet:"name=event_time, type=INT64" json:"event_time"`
	UserName  string `parquet:"name=user_name, type=UTF8, encoding=PLAIN_DICTIONARY" json:"user_name"`
	Record    string `parquet:"name=record, type=UTF8" json:"record"`
}

// NewRow converts rec to Row. EventTime and UserName are zero if the format
// has no eventTime or userName field.
func NewRow(rec *models.Record) (*Row, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to marshal record at line %d", rec.Line)
	}

	row := &Row{
		Line:      int64(rec.Line),
		EventType: rec.EventType(),
		Version:   rec.Version(),
		Record:    string(raw),
	}
	if v, ok := rec.Get("eventTime"); ok {
		row.EventTime, _ = v.(int64)
	}
	if v, ok := rec.Get("userName"); ok {
		row.UserName, _ = v.(string)
	}

	return row, nil
}
