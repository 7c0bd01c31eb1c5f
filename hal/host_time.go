package hal

import "time"

type hostTime struct {
	now func() time.Time
}

func (t *hostTime) Now() time.Time { return t.now() }
