package query

import (
	"encoding/json"

	"github.com/itchyny/gojq"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

// Query is a jq filter applied to JSON form of a record.
type Query struct {
	src   string
	query *gojq.Query
}

// Parse compiles jq query.
func Parse(src string) (*Query, error) {
	q, err := gojq.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to parse jq query: %s", src)
	}
	return &Query{src: src, query: q}, nil
}

func (x *Query) String() string { return x.src }

// Apply runs the query on rec and returns non-null results.
func (x *Query) Apply(rec *models.Record) ([]interface{}, error) {
	// Numbers must be float64 for jq, then go through JSON once.
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to marshal record at line %d", rec.Line)
	}
	var input interface{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.Wrapf(err, "Fail to unmarshal record at line %d", rec.Line)
	}

	var out []interface{}
	iter := x.query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, errors.Wrapf(err, "jq query failed at line %d", rec.Line)
		}
		if v != nil {
			out = append(out, v)
		}
	}

	return out, nil
}
