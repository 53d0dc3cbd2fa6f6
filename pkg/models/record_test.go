package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFormat(t *testing.T) *models.Format {
	format, err := models.NewFormat("EV", "version",
		mustFields(t, "version=s", "jobId=i", "factor=f", "num=i", "hosts=s{#}", "extra=s"),
		map[string]string{"1.0": "hosts"})
	require.NoError(t, err)
	return format
}

func TestRecord(t *testing.T) {
	format := newTestFormat(t)

	t.Run("Set and get", func(tt *testing.T) {
		rec := models.NewRecord(format)
		require.NoError(tt, rec.Set("version", "1.0"))
		require.NoError(tt, rec.Set("jobId", int64(42)))
		require.NoError(tt, rec.Set("factor", 1.5))
		require.NoError(tt, rec.Set("num", int64(2)))
		require.NoError(tt, rec.Set("hosts", []string{"a", "b"}))

		assert.Equal(tt, "EV", rec.EventType())
		assert.Equal(tt, "1.0", rec.Version())

		n, err := rec.Int("jobId")
		require.NoError(tt, err)
		assert.Equal(tt, int64(42), n)

		f, err := rec.Float("factor")
		require.NoError(tt, err)
		assert.Equal(tt, 1.5, f)

		hosts, err := rec.Strings("hosts")
		require.NoError(tt, err)
		assert.Equal(tt, []string{"a", "b"}, hosts)

		v, ok := rec.Get("hosts")
		assert.True(tt, ok)
		assert.Equal(tt, []string{"a", "b"}, v)
	})

	t.Run("Unset field is absent, not zero", func(tt *testing.T) {
		rec := models.NewRecord(format)
		require.NoError(tt, rec.Set("extra", ""))

		assert.True(tt, rec.IsSet("extra"))
		assert.False(tt, rec.IsSet("jobId"))

		_, err := rec.Int("jobId")
		assert.Equal(tt, models.ErrFieldNotSet, errors.Cause(err))
		_, err = rec.Int("nothing")
		assert.Equal(tt, models.ErrUnknownField, errors.Cause(err))
		_, err = rec.Int("extra")
		assert.Equal(tt, models.ErrTypeMismatch, errors.Cause(err))
	})

	t.Run("Type check on set", func(tt *testing.T) {
		rec := models.NewRecord(format)
		assert.Equal(tt, models.ErrTypeMismatch, errors.Cause(rec.Set("jobId", "42")))
		assert.Equal(tt, models.ErrTypeMismatch, errors.Cause(rec.Set("jobId", 42)))
		assert.Equal(tt, models.ErrTypeMismatch, errors.Cause(rec.Set("hosts", "a")))
		assert.Equal(tt, models.ErrUnknownField, errors.Cause(rec.Set("nothing", "a")))
	})

	t.Run("JSON keeps field order and skips unset", func(tt *testing.T) {
		rec := models.NewRecord(format)
		require.NoError(tt, rec.Set("version", "1.0"))
		require.NoError(tt, rec.Set("jobId", int64(7)))
		require.NoError(tt, rec.Set("num", int64(1)))
		require.NoError(tt, rec.Set("hosts", []string{"h"}))

		raw, err := json.Marshal(rec)
		require.NoError(tt, err)
		assert.Equal(tt, `{"version":"1.0","jobId":7,"num":1,"hosts":["h"]}`, string(raw))
	})

	t.Run("Long format", func(tt *testing.T) {
		rec := models.NewRecord(format)
		require.NoError(tt, rec.Set("version", "1.0"))
		require.NoError(tt, rec.Set("hosts", []string{"a", "b"}))

		lines := strings.Split(rec.FormatLong(), "\n")
		require.Equal(tt, format.Len(), len(lines))
		assert.Equal(tt, "version (string): 1.0", lines[0])
		assert.Equal(tt, "jobId (integer): <unset>", lines[1])
		assert.Equal(tt, "hosts (string[]): [a b]", lines[4])
	})
}

func TestFieldParse(t *testing.T) {
	f := models.Field{Name: "jobId", Type: models.Integer}
	v, err := f.Parse("-12")
	require.NoError(t, err)
	assert.Equal(t, int64(-12), v)

	_, err = f.Parse("abc")
	perr, ok := err.(*models.ParseError)
	require.True(t, ok)
	assert.Equal(t, "jobId", perr.Field)
	assert.Equal(t, "abc", perr.Value)

	arr := models.Field{Name: "rates", Type: models.Float, IsArray: true}
	av, err := arr.ParseArray([]string{"1", "2.5"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, av)

	_, err = arr.ParseArray([]string{"1", "x"})
	perr, ok = err.(*models.ParseError)
	require.True(t, ok)
	assert.Equal(t, "x", perr.Value)

	factor := models.Field{Name: "hostFactor", Type: models.Float}
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		_, err = factor.Parse(raw)
		perr, ok = err.(*models.ParseError)
		require.True(t, ok, raw)
		assert.Equal(t, raw, perr.Value)
	}
	_, err = arr.ParseArray([]string{"1", "NaN"})
	assert.Error(t, err)
}

func TestRecordSeal(t *testing.T) {
	fields, err := models.ParseFields([]string{"version=s", "jobId=i"})
	require.NoError(t, err)
	format, err := models.NewFormat("TEST", "version", fields, nil)
	require.NoError(t, err)

	rec := models.NewRecord(format)
	require.NoError(t, rec.Set("version", "1.0"))
	assert.False(t, rec.Sealed())

	rec.Seal()
	assert.True(t, rec.Sealed())
	assert.Equal(t, models.ErrRecordSealed, rec.Set("jobId", int64(1)))
	assert.Equal(t, models.ErrRecordSealed, rec.Store(0, "2.0"))
	assert.Equal(t, "1.0", rec.Version())
	assert.False(t, rec.IsSet("jobId"))
}
