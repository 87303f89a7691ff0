package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/warp/datepicker-engine/picker"
)

const (
	icsProductID = "-//warp//datepicker-engine//EN"
	icsVersion   = "2.0"
	icsDomain    = "datepicker.local"
)

// SelectionICS encodes day as a single all-day VEVENT. The summary
// carries the Ethiopic date; DTSTART carries the Gregorian date in loc.
func SelectionICS(id picker.SessionID, day picker.Instant, loc *time.Location, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, icsVersion)
	cal.Props.SetText(ical.PropProductID, icsProductID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", id, icsDomain))
	event.Props.SetText(ical.PropSummary, day.Date(loc).String())

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(now.UTC())
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(ical.PropDateTimeStart)
	dtStart.SetDate(day.Time(loc))
	event.Props.Set(dtStart)

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
