package loader

import "testing"

// meeting builds an event with one attendee so the not-a-meeting rule does
// not short-circuit the case under test.
func meeting(summary string) Event {
	return Event{Summary: summary, Attendees: []string{"me@example.com"}}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"no attendees", Event{Summary: "Team sync"}, excludedNotMeeting},
		{"declined", func() Event {
			e := meeting("Team sync")
			e.Status = "DECLINED"
			return e
		}(), excludedDeclined},
		{"tentative", func() Event {
			e := meeting("Team sync")
			e.Status = "TENTATIVE"
			return e
		}(), excludedDeclined},
		{"out of office busy status", func() Event {
			e := meeting("Blocked")
			e.BusyStatus = "OOF"
			return e
		}(), excludedOutOfOffice},
		{"pto keyword", meeting("PTO - long weekend"), excludedPersonal},
		{"focus friday", meeting("Focus Friday"), excludedFocusDay},
		{"laptop setup is general despite appointment words", meeting("Laptop setup with IT"), CategoryGeneral},
		{"dentist", meeting("Dentist appointment"), excludedPersonal},
		{"plain lunch", meeting("Lunch"), excludedPersonal},
		{"customer lunch", meeting("Lunch with customer"), CategoryCustomer},
		{"team dinner via description", func() Event {
			e := meeting("Dinner downtown")
			e.Description = "Team celebration"
			return e
		}(), CategoryCustomer},
		{"gym", meeting("Gym"), excludedPersonal},
		{"transparent event", func() Event {
			e := meeting("Hold: maybe")
			e.Transp = "TRANSPARENT"
			return e
		}(), excludedFreeTime},
		{"free busy status", func() Event {
			e := meeting("Hold: maybe")
			e.BusyStatus = "FREE"
			return e
		}(), excludedFreeTime},
		{"customer demo", meeting("Demo for Acme"), CategoryCustomer},
		{"customer in description only", func() Event {
			e := meeting("Quarterly review call")
			e.Description = "Prep with the client team"
			return e
		}(), CategoryCustomer},
		{"one on one", meeting("1:1 with manager"), CategoryOneOnOne},
		{"weekly sync", meeting("Weekly sync"), CategoryOneOnOne},
		{"training", meeting("Security training"), CategoryTraining},
		{"sprint planning", meeting("Sprint planning"), CategoryPlanning},
		{"fallback", meeting("Architecture discussion"), CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.event); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.event.Summary, got, tt.want)
			}
		})
	}
}

func TestWorkRelevant(t *testing.T) {
	if WorkRelevant(excludedPersonal) {
		t.Error("excluded markers must not be work relevant")
	}
	for _, c := range []string{CategoryGeneral, CategoryCustomer, CategoryTraining, CategoryPlanning, CategoryOneOnOne} {
		if !WorkRelevant(c) {
			t.Errorf("%s should be work relevant", c)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"EBA", TagEBA},
		{" informational ", TagInformational},
		{"info", TagInformational},
		{"Non-EBA", TagNonEBA},
		{"non eba", TagNonEBA},
		{"NonEBA", TagNonEBA},
		{"Sales", TagSales},
		{"unheard-of", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTag(tt.raw); got != tt.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
