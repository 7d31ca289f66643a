package model

// SampleCollection returns the built-in fiscal-year dataset used when no
// calendar file is supplied. Months run July through June; values are hours.
func SampleCollection() *Collection {
	return &Collection{
		Source:     "sample",
		Categories: sampleCategories(),
		Tags:       sampleTags(),
	}
}

func sampleCategories() *CalendarDataset {
	mk := func(month string, general, customer, training, planning, oneOnOne float64, meetings int) MonthRecord {
		return MonthRecord{
			Month: month,
			Values: map[string]float64{
				"general":  general,
				"customer": customer,
				"training": training,
				"planning": planning,
				"oneOnOne": oneOnOne,
			},
			Hours:    general + customer + training + planning + oneOnOne,
			Meetings: meetings,
		}
	}
	return &CalendarDataset{
		Name: "category hours",
		Months: []MonthRecord{
			mk("Jul", 31, 6, 12, 5, 4, 38),
			mk("Aug", 35, 9, 8, 6, 5, 44),
			mk("Sep", 40, 11, 6, 8, 5, 51),
			mk("Oct", 44, 12, 5, 9, 5, 56),
			mk("Nov", 42, 10, 4, 8, 4, 53),
			mk("Dec", 28, 7, 3, 6, 3, 34),
			mk("Jan", 52, 14, 8, 10, 5, 64),
			mk("Feb", 47, 13, 6, 9, 5, 58),
			mk("Mar", 45, 12, 5, 10, 5, 57),
			mk("Apr", 43, 11, 4, 9, 4, 54),
			mk("May", 41, 10, 4, 8, 4, 52),
			mk("Jun", 36, 8, 5, 7, 4, 45),
		},
	}
}

func sampleTags() *CalendarDataset {
	mk := func(month string, informational, onboarding, eba, ai, nonEba, sales, support float64, meetings int) MonthRecord {
		return MonthRecord{
			Month: month,
			Values: map[string]float64{
				"informational": informational,
				"onboarding":    onboarding,
				"eba":           eba,
				"ai":            ai,
				"nonEba":        nonEba,
				"sales":         sales,
				"support":       support,
			},
			Hours:    informational + onboarding + eba + ai + nonEba + sales + support,
			Meetings: meetings,
		}
	}
	return &CalendarDataset{
		Name: "tag hours",
		Months: []MonthRecord{
			mk("Jul", 7, 9, 2, 1, 2, 1, 1, 21),
			mk("Aug", 8, 7, 3, 1, 2, 1, 1, 22),
			mk("Sep", 9, 5, 3, 1, 3, 2, 1, 23),
			mk("Oct", 10, 4, 4, 2, 3, 2, 1, 25),
			mk("Nov", 9, 3, 4, 2, 3, 2, 1, 23),
			mk("Dec", 6, 2, 2, 1, 2, 1, 1, 14),
			mk("Jan", 12, 8, 4, 2, 3, 2, 1, 30),
			mk("Feb", 11, 6, 4, 2, 3, 2, 1, 28),
			mk("Mar", 10, 5, 4, 2, 3, 2, 1, 26),
			mk("Apr", 10, 4, 3, 2, 3, 2, 1, 24),
			mk("May", 9, 4, 3, 2, 2, 2, 1, 22),
			mk("Jun", 8, 3, 3, 1, 2, 1, 1, 19),
		},
	}
}
