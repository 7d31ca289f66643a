package loader

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Event is one VEVENT pulled out of an ICS export. Property parameters that
// matter for categorization (PARTSTAT, busy status, transparency) are
// flattened onto the struct; everything else is discarded.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Organizer   string
	Attendees   []string
	Tags        []string // CATEGORIES values, comma-split and trimmed
	Status      string   // PARTSTAT of the calendar owner: ACCEPTED, DECLINED, TENTATIVE
	BusyStatus  string   // X-MICROSOFT-CDO-BUSYSTATUS: BUSY, FREE, OOF
	Transp      string   // OPAQUE or TRANSPARENT
}

// DurationHours returns the event length in hours, zero when either
// timestamp failed to parse.
func (e Event) DurationHours() float64 {
	if e.Start.IsZero() || e.End.IsZero() || e.End.Before(e.Start) {
		return 0
	}
	return e.End.Sub(e.Start).Hours()
}

// IsMeeting reports whether the event has at least one attendee. Entries
// without attendees are reminders or personal blocks, not meetings.
func (e Event) IsMeeting() bool { return len(e.Attendees) > 0 }

var (
	timestampRe = regexp.MustCompile(`(\d{8}T\d{6})`)
	dateOnlyRe  = regexp.MustCompile(`(\d{8})`)
	cnRe        = regexp.MustCompile(`CN="?([^";:]+)"?`)
	partstatRe  = regexp.MustCompile(`PARTSTAT=([^;:]+)`)
	mailtoRe    = regexp.MustCompile(`(?i)mailto:(\S+)`)
)

// ParseICS reads an iCalendar stream and returns its VEVENTs. Folded
// continuation lines (leading space or tab, RFC 5545 section 3.1) are
// unfolded before property parsing. Owner is the calendar owner's email,
// used to pick the owner's own PARTSTAT out of the attendee list; pass ""
// to leave Status unset.
func ParseICS(r io.Reader, owner string) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	var cur *Event
	var pending string // property accumulating folded continuations

	flush := func() {
		if cur != nil && pending != "" {
			applyProperty(cur, pending, owner)
		}
		pending = ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if pending != "" {
				pending += strings.TrimLeft(line, " \t")
			}
			continue
		}
		flush()

		switch {
		case line == "BEGIN:VEVENT":
			cur = &Event{}
		case line == "END:VEVENT":
			if cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		case cur != nil && strings.Contains(line, ":"):
			pending = line
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ics stream: %w", err)
	}
	return events, nil
}

// applyProperty parses one unfolded content line onto the event.
func applyProperty(e *Event, line, owner string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return
	}
	prop, value := line[:idx], line[idx+1:]
	name := prop
	if semi := strings.Index(prop, ";"); semi >= 0 {
		name = prop[:semi]
	}

	switch name {
	case "SUMMARY":
		e.Summary = unescapeText(value)
	case "DESCRIPTION":
		if len(value) > 500 {
			value = value[:500]
		}
		e.Description = unescapeText(value)
	case "DTSTART":
		e.Start = parseICSTime(prop, value)
	case "DTEND":
		e.End = parseICSTime(prop, value)
	case "ORGANIZER":
		if m := cnRe.FindStringSubmatch(prop); m != nil {
			e.Organizer = m[1]
		}
	case "ATTENDEE":
		if m := mailtoRe.FindStringSubmatch(value); m != nil {
			addr := m[1]
			e.Attendees = append(e.Attendees, addr)
			if owner != "" && strings.EqualFold(addr, owner) {
				if ps := partstatRe.FindStringSubmatch(prop); ps != nil {
					e.Status = ps[1]
				}
			}
		}
	case "CATEGORIES":
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				e.Tags = append(e.Tags, tag)
			}
		}
	case "STATUS":
		if e.Status == "" {
			e.Status = value
		}
	case "X-MICROSOFT-CDO-BUSYSTATUS":
		e.BusyStatus = value
	case "TRANSP":
		e.Transp = value
	}
}

// parseICSTime handles both full timestamps and all-day DATE values. TZID
// parameters are ignored; bucketing by month does not need zone precision.
func parseICSTime(prop, value string) time.Time {
	if m := timestampRe.FindStringSubmatch(value); m != nil {
		if t, err := time.Parse("20060102T150405", m[1]); err == nil {
			return t
		}
	}
	if strings.Contains(prop, "VALUE=DATE") {
		if m := dateOnlyRe.FindStringSubmatch(value); m != nil {
			if t, err := time.Parse("20060102", m[1]); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// unescapeText reverses the RFC 5545 TEXT escapes that show up in exports.
func unescapeText(s string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return replacer.Replace(s)
}
