package quest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Category classifies what kind of meetup a quest is
type Category string

const (
	CategoryFood    Category = "food"
	CategoryStudy   Category = "study"
	CategoryFitness Category = "fitness"
	CategoryErrands Category = "errands"
	CategoryOthers  Category = "others"
)

// AllCategories lists every valid quest category
func AllCategories() []Category {
	return []Category{CategoryFood, CategoryStudy, CategoryFitness, CategoryErrands, CategoryOthers}
}

// Quest represents a time-bounded, location-anchored meetup post.
// It is the aggregate root for quest-related operations. Quests are
// immutable after creation except for deletion by the owner.
type Quest struct {
	shared.BaseAggregateRoot
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Category  Category  `gorm:"type:varchar(20);not null;index"`
	Date      time.Time `gorm:"type:date;not null;index"`
	StartTime string    `gorm:"type:varchar(5);not null"` // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null"` // HH:MM
	Details   string    `gorm:"type:text"`
	Location  string    `gorm:"type:text;not null"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	Longitude float64   `gorm:"type:double precision;not null"`
}

// TableName returns the table name for GORM
func (Quest) TableName() string {
	return "quests"
}

// NewQuest creates a new quest with required fields. Coordinates must
// already be resolved from the location text; creation without a
// resolved coordinate is not representable.
func NewQuest(ownerID uuid.UUID, title string, category Category, date, startTime, endTime, details, location string, lat, lng float64) (*Quest, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("Owner is required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if err := ValidateClock(startTime, "start_time"); err != nil {
		return nil, err
	}
	if err := ValidateClock(endTime, "end_time"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(location) == "" {
		return nil, shared.NewValidationError("Location is required")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, shared.NewValidationError("Coordinates out of range")
	}

	q := &Quest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Title:             strings.TrimSpace(title),
		Category:          category,
		Date:              day,
		StartTime:         startTime,
		EndTime:           endTime,
		Details:           strings.TrimSpace(details),
		Location:          strings.TrimSpace(location),
		Latitude:          lat,
		Longitude:         lng,
	}

	q.AddDomainEvent(NewQuestCreatedEvent(q))

	return q, nil
}

// StartInstant returns the moment the quest begins in the given location
func (q *Quest) StartInstant(loc *time.Location) time.Time {
	return combine(q.Date, q.StartTime, loc)
}

// EndInstant returns the moment the quest ends in the given location.
// An end time at or before the start time means the quest spans
// midnight, so the end falls on the next calendar day.
func (q *Quest) EndInstant(loc *time.Location) time.Time {
	end := combine(q.Date, q.EndTime, loc)
	if q.EndTime <= q.StartTime {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// IsActive reports whether the quest's end instant is still in the future
func (q *Quest) IsActive(now time.Time) bool {
	return now.Before(q.EndInstant(now.Location()))
}

// IsOwnedBy reports whether the given user created this quest
func (q *Quest) IsOwnedBy(userID uuid.UUID) bool {
	return q.OwnerID == userID
}

// Schedule returns the quest's displayed time range, e.g. "12:00 - 13:00"
func (q *Quest) Schedule() string {
	return fmt.Sprintf("%s - %s", q.StartTime, q.EndTime)
}

func combine(day time.Time, clock string, loc *time.Location) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func parseDate(date string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, shared.NewValidationError("Date must be in YYYY-MM-DD format")
	}
	return day, nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("Title is required")
	}
	if len(title) > 200 {
		return shared.NewValidationError("Title cannot exceed 200 characters")
	}
	return nil
}

// ValidateCategory checks that the category is one of the known values
func ValidateCategory(c Category) error {
	switch c {
	case CategoryFood, CategoryStudy, CategoryFitness, CategoryErrands, CategoryOthers:
		return nil
	default:
		return shared.NewValidationError("Category must be one of food, study, fitness, errands, others")
	}
}

// ValidateClock checks that a clock value is in HH:MM form, naming the
// offending field in the error
func ValidateClock(clock, field string) error {
	if _, err := time.Parse("15:04", clock); err != nil {
		return shared.NewValidationError(fmt.Sprintf("%s must be in HH:MM format", field))
	}
	return nil
}
