package internal

import "time"

type profileRecord struct {
	current *time.Time
	total   time.Duration
	max     time.Duration
	count   int64
}

// ProfileResult is summary of one profile target.
type ProfileResult struct {
	Total float64 `json:"total"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// Profile measures elapsed time per target and counts events such as decode
// error kinds. Profile is not goroutine safe.
type Profile struct {
	records map[string]*profileRecord
	counts  map[string]int64
}

func NewProfile() *Profile {
	return &Profile{
		records: map[string]*profileRecord{},
		counts:  map[string]int64{},
	}
}

func (x *Profile) Start(target string) {
	p, ok := x.records[target]
	if !ok {
		p = &profileRecord{}
		x.records[target] = p
	}

	if p.current != nil {
		Logger.WithField("target", target).Warn("target started twice for profile, restarted")
	} else {
		p.count++
	}

	now := time.Now()
	p.current = &now
}

func (x *Profile) Stop(target string) {
	now := time.Now()

	p, ok := x.records[target]
	if !ok || p.current == nil {
		Logger.WithField("target", target).Warn("Not started for profile")
		return
	}

	sub := now.Sub(*p.current)
	p.total += sub
	if p.max < sub {
		p.max = sub
	}

	p.current = nil
}

// Count increments counter of name.
func (x *Profile) Count(name string) {
	x.counts[name]++
}

// Counter returns current value of counter name.
func (x *Profile) Counter(name string) int64 {
	return x.counts[name]
}

func (x *Profile) Pack() map[string]ProfileResult {
	v := map[string]ProfileResult{}
	for k, r := range x.records {
		v[k] = ProfileResult{
			Total: r.total.Seconds(),
			Max:   r.max.Seconds(),
			Count: r.count,
		}
	}
	return v
}

// Report writes measured time and counters to Logger in debug level.
func (x *Profile) Report(msg string) {
	fields := map[string]interface{}{}
	for k, v := range x.Pack() {
		fields[k] = v
	}
	for k, v := range x.counts {
		fields[k] = v
	}
	Logger.WithFields(fields).Debug(msg)
}
