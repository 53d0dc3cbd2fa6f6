package sink_test

import (
	"bufio"
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lsftools/lsbacct/internal/sink"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func testRecords(t *testing.T) []*models.Record {
	fields, err := models.ParseFields([]string{"eventType=s", "versionNumber=s", "eventTime=i", "userName=s", "numExHosts=i", "execHosts=s{#}", "note=s"})
	require.NoError(t, err)
	format, err := models.NewFormat("JOB_FINISH", "versionNumber", fields, map[string]string{"6.0": "execHosts"})
	require.NoError(t, err)

	var records []*models.Record
	for i, user := range []string{"alice", "bob"} {
		rec := models.NewRecord(format)
		rec.Line = i + 1
		require.NoError(t, rec.Set("eventType", "JOB_FINISH"))
		require.NoError(t, rec.Set("versionNumber", "6.0"))
		require.NoError(t, rec.Set("eventTime", int64(1000+i)))
		require.NoError(t, rec.Set("userName", user))
		require.NoError(t, rec.Set("numExHosts", int64(1)))
		require.NoError(t, rec.Set("execHosts", []string{"host" + user}))
		records = append(records, rec)
	}
	return records
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "lsbacct")
	require.NoError(t, err)
	return dir
}

func writeAll(t *testing.T, s sink.Sink, records []*models.Record) {
	for _, rec := range records {
		require.NoError(t, s.Write(rec))
	}
	require.NoError(t, s.Close())
}

func TestJSONSink(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.json")
	s, err := sink.New(sink.KindJSON, path)
	require.NoError(t, err)
	writeAll(t, s, testRecords(t))

	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Equal(t, 2, len(lines))
	assert.Equal(t, `{"eventType":"JOB_FINISH","versionNumber":"6.0","eventTime":1000,"userName":"alice","numExHosts":1,"execHosts":["hostalice"]}`, lines[0])
}

func TestMsgpackSink(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.msg.gz")
	s, err := sink.New(sink.KindMsgpack, path)
	require.NoError(t, err)
	writeAll(t, s, testRecords(t))

	fd, err := os.Open(path)
	require.NoError(t, err)
	defer fd.Close()
	gr, err := gzip.NewReader(fd)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(bufio.NewReader(gr))
	var users []string
	for i := 0; i < 2; i++ {
		var v map[string]interface{}
		require.NoError(t, dec.Decode(&v))
		users = append(users, v["userName"].(string))
		_, ok := v["note"]
		assert.False(t, ok)
	}
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestParquetSink(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.parquet")
	s, err := sink.New(sink.KindParquet, path)
	require.NoError(t, err)
	writeAll(t, s, testRecords(t))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(sink.Row), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	require.Equal(t, 2, num)

	rows := make([]sink.Row, num)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "alice", rows[0].UserName)
	assert.Equal(t, int64(1000), rows[0].EventTime)
	assert.Equal(t, "6.0", rows[0].Version)
	assert.Equal(t, int64(2), rows[1].Line)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(rows[1].Record), &body))
	assert.Equal(t, "bob", body["userName"])
}

func TestSQLiteSink(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.sqlite")
	s, err := sink.New(sink.KindSQLite, path)
	require.NoError(t, err)
	writeAll(t, s, testRecords(t))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM acct_records").Scan(&count))
	assert.Equal(t, 2, count)

	var user string
	require.NoError(t, db.QueryRow("SELECT user_name FROM acct_records WHERE line = 2").Scan(&user))
	assert.Equal(t, "bob", user)
}

func TestNewSink(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	t.Run("Directory target", func(tt *testing.T) {
		s, err := sink.New(sink.KindJSON, dir)
		require.NoError(tt, err)
		require.NoError(tt, s.Close())

		files, err := ioutil.ReadDir(dir)
		require.NoError(tt, err)
		require.Equal(tt, 1, len(files))
		assert.True(tt, strings.HasSuffix(files[0].Name(), ".json"))
	})

	t.Run("Unsupported kind", func(tt *testing.T) {
		_, err := sink.New(sink.Kind("csv"), filepath.Join(dir, "x"))
		assert.Error(tt, err)
	})

	t.Run("Parquet to stdout", func(tt *testing.T) {
		_, err := sink.New(sink.KindParquet, "-")
		assert.Error(tt, err)
	})

	t.Run("File name", func(tt *testing.T) {
		ts := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
		name := sink.FileName(sink.KindParquet, ts)
		assert.True(tt, strings.HasPrefix(name, "20200304_050607_"))
		assert.True(tt, strings.HasSuffix(name, ".parquet"))
		assert.NotContains(tt, name, "-")
	})
}
