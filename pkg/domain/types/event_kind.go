package types

import "fmt"

// EventKind is the enumerated tag on a usage event
type EventKind string

const (
	EventKindStart        EventKind = "start"
	EventKindAbout        EventKind = "about"
	EventKindAboutButton  EventKind = "about_btn"
	EventKindReload       EventKind = "reload"
	EventKindOpenList     EventKind = "open_list"
	EventKindPromptSearch EventKind = "prompt_search"
	EventKindBackHome     EventKind = "back_home"
	EventKindSearchText   EventKind = "search_text"
	EventKindSearchHit    EventKind = "search_hit"
	EventKindNotFound     EventKind = "not_found"
	EventKindDeptSelect   EventKind = "dept_select"
	EventKindAdminOpen    EventKind = "admin_open"
	EventKindBroadcast    EventKind = "broadcast"
)

// AllEventKinds returns every valid event kind
func AllEventKinds() []EventKind {
	return []EventKind{
		EventKindStart,
		EventKindAbout,
		EventKindAboutButton,
		EventKindReload,
		EventKindOpenList,
		EventKindPromptSearch,
		EventKindBackHome,
		EventKindSearchText,
		EventKindSearchHit,
		EventKindNotFound,
		EventKindDeptSelect,
		EventKindAdminOpen,
		EventKindBroadcast,
	}
}

// ResolvedDepartmentKinds are the kinds that carry a resolved department,
// either a direct search hit or an explicit button selection. Department
// rankings count only these.
func ResolvedDepartmentKinds() []EventKind {
	return []EventKind{EventKindDeptSelect, EventKindSearchHit}
}

// LookupKinds are the kinds that represent a user-initiated lookup.
// Per-user usage counts are computed over these.
func LookupKinds() []EventKind {
	return []EventKind{EventKindDeptSelect, EventKindSearchHit, EventKindSearchText}
}

// IsValid checks if the event kind is valid
func (k EventKind) IsValid() bool {
	for _, v := range AllEventKinds() {
		if k == v {
			return true
		}
	}
	return false
}

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// ParseEventKind parses a string into an EventKind
func ParseEventKind(s string) (EventKind, error) {
	kind := EventKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid event kind: %s", s)
	}
	return kind, nil
}
