package splitting

import "time"

// Session holds the state of one bill-splitting run: the parsed receipt, the
// members splitting it, any manually added items, and the unit assignment.
// A session starts empty, is mutated in place by commands, and is discarded
// when the group is done. There is at most one receipt per session.
type Session struct {
	ID         string     `json:"id"`
	OrderDate  string     `json:"order_date"`
	Items      ItemTable  `json:"items"`
	Members    []string   `json:"members"`
	Assignment Assignment `json:"assignment"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasMember reports whether name is already in the member list.
func (s *Session) HasMember(name string) bool {
	for _, m := range s.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Cards expands the session's item table into unit cards.
func (s *Session) Cards() []UnitCard {
	return ExpandUnits(s.Items)
}
