package descrow

import (
	"encoding/json"
	"time"

	"github.com/iov-one/descrow/errors"
)

// UnixTime is a point in time with seconds precision, as stored in models
// and messages. Zero means the time is not set.
type UnixTime int64

// AsUnixTime drops the sub-second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the UTC time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// UnmarshalJSON accepts seconds since the epoch as well as an RFC3339
// string, which is easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err != nil {
		var std time.Time
		if err := json.Unmarshal(raw, &std); err != nil {
			return errors.Wrap(errors.ErrInvalidInput, "invalid time format")
		}
		unix = std.Unix()
	}
	if unix < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "time before epoch")
	}
	*t = UnixTime(unix)
	return nil
}
