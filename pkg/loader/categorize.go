package loader

import "strings"

// Work categories surfaced by the category view. Events that survive the
// exclusion rules land in exactly one of these.
const (
	CategoryGeneral  = "general"
	CategoryCustomer = "customer"
	CategoryTraining = "training"
	CategoryPlanning = "planning"
	CategoryOneOnOne = "oneOnOne"
)

// Exclusion markers. These never reach a dataset; they exist so callers can
// report why an event was dropped.
const (
	excludedNotMeeting  = "excluded/not-a-meeting"
	excludedDeclined    = "excluded/declined-tentative"
	excludedOutOfOffice = "excluded/out-of-office"
	excludedPersonal    = "excluded/personal"
	excludedFocusDay    = "excluded/focus-day"
	excludedFreeTime    = "excluded/free-time"
)

// keyword rule tables, checked in priority order
var (
	timeOffWords     = []string{"out of office", "ooo", "pto", "vacation", "holiday"}
	adminWords       = []string{"laptop", "it support", "setup"}
	appointmentWords = []string{"dentist", "doctor", "personal booking"}
	mealWords        = []string{"lunch", "breakfast"}
	businessMealWords = []string{
		"customer", "client", "dinner", "reception", "networking", "team",
	}
	breakWords    = []string{"gym", "workout", "exercise"}
	customerWords = []string{
		"customer", "client", "external", "demo", "presentation",
		"sales", "prospect", "dinner", "reception",
	}
	oneOnOneWords = []string{"1:1", "one on one", "1-1", "sync", "catch up", "check in"}
	trainingWords = []string{
		"training", "workshop", "learning", "course", "webinar",
		"certification", "onboarding",
	}
	planningWords = []string{
		"planning", "roadmap", "strategy", "review", "retrospective",
		"sprint", "scrum", "project", "initiative", "backlog", "refinement",
	}
)

// Categorize assigns a work category to the event, or an excluded/* marker
// when the event should not count toward work hours. Rules run in priority
// order: presence checks and exclusions first, then keyword matching on the
// summary (and description, for customer signals).
func Categorize(e Event) string {
	summary := strings.ToLower(e.Summary)
	desc := strings.ToLower(e.Description)

	if !e.IsMeeting() {
		return excludedNotMeeting
	}
	if e.Status == "DECLINED" || e.Status == "TENTATIVE" {
		return excludedDeclined
	}
	if e.BusyStatus == "OOF" {
		return excludedOutOfOffice
	}
	if containsAny(summary, timeOffWords) {
		return excludedPersonal
	}
	if strings.Contains(summary, "focus friday") {
		return excludedFocusDay
	}
	if containsAny(summary, adminWords) {
		return CategoryGeneral
	}
	if containsAny(summary, appointmentWords) && !containsAny(summary, []string{"customer", "client"}) {
		return excludedPersonal
	}
	if containsAny(summary, mealWords) {
		if containsAny(summary, businessMealWords) || containsAny(desc, businessMealWords) {
			return CategoryCustomer
		}
		return excludedPersonal
	}
	if containsAny(summary, breakWords) {
		return excludedPersonal
	}
	if e.Transp == "TRANSPARENT" || e.BusyStatus == "FREE" {
		return excludedFreeTime
	}

	if containsAny(summary, customerWords) || containsAny(desc, customerWords) {
		return CategoryCustomer
	}
	if containsAny(summary, oneOnOneWords) {
		return CategoryOneOnOne
	}
	if containsAny(summary, trainingWords) {
		return CategoryTraining
	}
	if containsAny(summary, planningWords) {
		return CategoryPlanning
	}
	return CategoryGeneral
}

// WorkRelevant reports whether a category counts toward work hours.
func WorkRelevant(category string) bool {
	return !strings.HasPrefix(category, "excluded/")
}

// Responsibility tags surfaced by the tag view.
const (
	TagInformational = "informational"
	TagOnboarding    = "onboarding"
	TagEBA           = "eba"
	TagAI            = "ai"
	TagNonEBA        = "nonEba"
	TagSales         = "sales"
	TagSupport       = "support"
)

// tagAliases maps normalized CATEGORIES values to the canonical tag keys.
var tagAliases = map[string]string{
	"informational": TagInformational,
	"info":          TagInformational,
	"onboarding":    TagOnboarding,
	"eba":           TagEBA,
	"ai":            TagAI,
	"non-eba":       TagNonEBA,
	"noneba":        TagNonEBA,
	"non eba":       TagNonEBA,
	"sales":         TagSales,
	"support":       TagSupport,
}

// NormalizeTag maps a raw CATEGORIES value onto a canonical tag key.
// Unrecognized tags return "" and are skipped by the aggregator.
func NormalizeTag(raw string) string {
	return tagAliases[strings.ToLower(strings.TrimSpace(raw))]
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
