package usage

import (
	"sort"
	"time"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

// Aggregator sums number of execution hosts of running jobs per user and
// time bucket. A job is counted in every bucket from startTime to eventTime.
type Aggregator struct {
	resolution int64
	data       map[string]map[int64]int64
}

// Point is a value of a time bucket.
type Point struct {
	Time  time.Time `json:"time"`
	Value int64     `json:"value"`
}

// Series is points of a user sorted by time.
type Series struct {
	User   string  `json:"user"`
	Points []Point `json:"points"`
}

// NewAggregator is constructor of Aggregator. resolution is truncated to
// seconds and must be at least one second.
func NewAggregator(resolution time.Duration) (*Aggregator, error) {
	res := int64(resolution / time.Second)
	if res < 1 {
		return nil, errors.Errorf("Resolution must be 1 second or more: %v", resolution)
	}

	return &Aggregator{
		resolution: res,
		data:       map[string]map[int64]int64{},
	}, nil
}

// Add counts a job finish record. Records whose startTime falls in the
// first bucket since epoch are skipped; it covers startTime 0 of a job that
// never started.
func (x *Aggregator) Add(rec *models.Record) error {
	startTime, err := rec.Int("startTime")
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	if startTime/x.resolution == 0 {
		return nil
	}

	endTime, err := rec.Int("eventTime")
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	user, err := rec.Str("userName")
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}
	hosts, err := rec.Int("numExHosts")
	if err != nil {
		return errors.Wrapf(err, "line %d", rec.Line)
	}

	buckets, ok := x.data[user]
	if !ok {
		buckets = map[int64]int64{}
		x.data[user] = buckets
	}

	for t := startTime / x.resolution; t <= endTime/x.resolution; t++ {
		buckets[t] += hosts
	}

	return nil
}

// Series returns aggregated values sorted by user name and time.
func (x *Aggregator) Series() []Series {
	var users []string
	for u := range x.data {
		users = append(users, u)
	}
	sort.Strings(users)

	out := make([]Series, 0, len(users))
	for _, u := range users {
		var keys []int64
		for k := range x.data[u] {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		s := Series{User: u, Points: make([]Point, len(keys))}
		for i, k := range keys {
			s.Points[i] = Point{
				Time:  time.Unix(k*x.resolution, 0).UTC(),
				Value: x.data[u][k],
			}
		}
		out = append(out, s)
	}

	return out
}
