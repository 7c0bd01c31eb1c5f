package app

import (
	"fmt"

	"folio/stage/gate"
)

// Observer reports how much of each page region lies inside the viewport. It
// implements gate.Observer.
type Observer struct {
	regions map[string]Rect
	subs    []*subscription
	nextID  int

	top, height float64
}

type subscription struct {
	id     int
	region string
	fn     func(float64)
	last   float64
}

var _ gate.Observer = (*Observer)(nil)

func NewObserver() *Observer {
	return &Observer{regions: map[string]Rect{}}
}

// SetRegion records or moves a region in page coordinates.
func (o *Observer) SetRegion(id string, r Rect) {
	o.regions[id] = r
}

// Observe subscribes fn to ratio changes of region. fn first fires on the next Update.
func (o *Observer) Observe(region string, fn func(ratio float64)) (detach func(), err error) {
	if _, ok := o.regions[region]; !ok {
		return nil, fmt.Errorf("observe %q: %w", region, gate.ErrRegionNotFound)
	}
	if fn == nil {
		return func() {}, nil
	}
	o.nextID++
	s := &subscription{id: o.nextID, region: region, fn: fn, last: -1}
	o.subs = append(o.subs, s)
	return func() { o.remove(s.id) }, nil
}

func (o *Observer) remove(id int) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// Ratio returns the visible fraction of region for the last viewport passed to Update.
func (o *Observer) Ratio(region string) float64 {
	r, ok := o.regions[region]
	if !ok || r.H <= 0 {
		return 0
	}
	top := max(r.Y, o.top)
	bottom := min(r.Y+r.H, o.top+o.height)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.H
}

// Update sets the viewport to [top, top+height) and notifies every subscriber whose
// ratio changed.
func (o *Observer) Update(top, height float64) {
	o.top, o.height = top, height

	type call struct {
		fn    func(float64)
		ratio float64
	}
	var calls []call
	for _, s := range o.subs {
		ratio := o.Ratio(s.region)
		if ratio == s.last {
			continue
		}
		s.last = ratio
		calls = append(calls, call{s.fn, ratio})
	}
	// Callbacks may build scenes or detach; run them after the scan.
	for _, c := range calls {
		c.fn(c.ratio)
	}
}
