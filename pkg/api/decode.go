package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lsftools/lsbacct/internal/query"
	"github.com/lsftools/lsbacct/pkg/logfile"
	"github.com/pkg/errors"
)

type decodeError struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type decodeResponse struct {
	Records []interface{} `json:"records"`
	Errors  []decodeError `json:"errors"`
}

func decodeLog(args Arguments, c *gin.Context) (*apiResponse, Error) {
	var q *query.Query
	if src := c.Query("query"); src != "" {
		parsed, err := query.Parse(src)
		if err != nil {
			return nil, wrapUserError(err, 400, "Fail to parse query (invalid jq query)")
		}
		q = parsed
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, args.maxBodySize())
	reader := logfile.NewReader(body, args.Registry)

	resp := decodeResponse{
		Records: []interface{}{},
		Errors:  []decodeError{},
	}

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var recErr *logfile.RecordError
			if errors.As(err, &recErr) {
				resp.Errors = append(resp.Errors, decodeError{
					Line:    recErr.Line,
					Kind:    logfile.ErrorKind(recErr.Err),
					Message: recErr.Err.Error(),
				})
				continue
			}

			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, newUserErrorf(http.StatusRequestEntityTooLarge,
					"Request body exceeds %d bytes", tooLarge.Limit)
			}
			return nil, wrapSystemError(err, 500, "Fail to read request body")
		}

		if q == nil {
			resp.Records = append(resp.Records, rec)
			continue
		}

		values, err := q.Apply(rec)
		if err != nil {
			resp.Errors = append(resp.Errors, decodeError{
				Line:    rec.Line,
				Kind:    "query",
				Message: err.Error(),
			})
			continue
		}
		resp.Records = append(resp.Records, values...)
	}

	logger.WithFields(map[string]interface{}{
		"records": len(resp.Records),
		"errors":  len(resp.Errors),
	}).Debug("Decoded posted log")

	return &apiResponse{Code: http.StatusOK, Message: resp}, nil
}
