package board

import (
	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/quest"
)

// ViewState names the board's mutually exclusive interaction modes.
// Exactly one is in effect at a time.
type ViewState string

const (
	// StateIdle shows the map with markers and no overlay
	StateIdle ViewState = "idle"
	// StateCreating shows the quest creation form
	StateCreating ViewState = "creating"
	// StateViewingDetail shows one quest's detail sheet
	StateViewingDetail ViewState = "viewing_detail"
	// StateViewingChat shows one quest's chat
	StateViewingChat ViewState = "viewing_chat"
)

// View is the board's current mode plus the quest it is focused on,
// if any. Idle and creating states carry no focus.
type View struct {
	State   ViewState  `json:"state"`
	QuestID *uuid.UUID `json:"quest_id,omitempty"`
}

// IdleView returns the default unfocused view
func IdleView() View {
	return View{State: StateIdle}
}

// CreatingView returns the quest creation view
func CreatingView() View {
	return View{State: StateCreating}
}

// DetailView returns a view focused on one quest's detail
func DetailView(questID uuid.UUID) View {
	return View{State: StateViewingDetail, QuestID: &questID}
}

// ChatView returns a view focused on one quest's chat
func ChatView(questID uuid.UUID) View {
	return View{State: StateViewingChat, QuestID: &questID}
}

// FilterState narrows which quests appear on the board. A zero value
// matches everything.
type FilterState struct {
	Categories []quest.Category `json:"categories" form:"category"`
	Date       string           `json:"date" form:"date"`
	StartAfter string           `json:"start_after" form:"start_after"` // HH:MM, inclusive
	EndBefore  string           `json:"end_before" form:"end_before"`   // HH:MM, inclusive
}

// Validate checks categories and clock bounds
func (f FilterState) Validate() error {
	for _, c := range f.Categories {
		if err := quest.ValidateCategory(c); err != nil {
			return err
		}
	}
	if f.StartAfter != "" {
		if err := quest.ValidateClock(f.StartAfter, "start_after"); err != nil {
			return err
		}
	}
	if f.EndBefore != "" {
		if err := quest.ValidateClock(f.EndBefore, "end_before"); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether a quest passes every set constraint
func (f FilterState) Matches(q *quest.Quest) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if q.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Date != "" && q.Date.Format("2006-01-02") != f.Date {
		return false
	}
	// HH:MM strings compare lexicographically in time order
	if f.StartAfter != "" && q.StartTime < f.StartAfter {
		return false
	}
	if f.EndBefore != "" && q.EndTime > f.EndBefore {
		return false
	}
	return true
}
