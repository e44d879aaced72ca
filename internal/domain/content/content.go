package content

import (
	"github.com/sidequest/backend/internal/domain/shared"
)

// Quote is a single motivational quote
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// ReflectionCategory selects the theme of a daily reflection question
type ReflectionCategory string

const (
	ReflectionStressed ReflectionCategory = "stressed"
	ReflectionBurnout  ReflectionCategory = "burnout"
	ReflectionSleep    ReflectionCategory = "sleep"
)

// ValidateReflectionCategory checks that the category is a known value
func ValidateReflectionCategory(c ReflectionCategory) error {
	switch c {
	case ReflectionStressed, ReflectionBurnout, ReflectionSleep:
		return nil
	default:
		return shared.NewValidationError("Category must be one of stressed, burnout, sleep")
	}
}

// DefaultQuotes is the built-in quote list served when generation fails
func DefaultQuotes() []Quote {
	return []Quote{
		{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
		{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
		{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
		{Text: "Act as if what you do makes a difference. It does.", Author: "William James"},
		{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
		{Text: "What you get by achieving your goals is not as important as what you become by achieving your goals.", Author: "Zig Ziglar"},
		{Text: "You are never too old to set another goal or to dream a new dream.", Author: "C.S. Lewis"},
		{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
		{Text: "In the middle of every difficulty lies opportunity.", Author: "Albert Einstein"},
		{Text: "Start where you are. Use what you have. Do what you can.", Author: "Arthur Ashe"},
		{Text: "Everything you've ever wanted is on the other side of fear.", Author: "George Addair"},
		{Text: "Hardships often prepare ordinary people for an extraordinary destiny.", Author: "C.S. Lewis"},
		{Text: "Don't watch the clock; do what it does. Keep going.", Author: "Sam Levenson"},
		{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
		{Text: "It always seems impossible until it's done.", Author: "Nelson Mandela"},
		{Text: "Your limitation—it's only your imagination.", Author: "Unknown"},
		{Text: "Dream bigger. Do bigger.", Author: "Unknown"},
		{Text: "Don't stop when you're tired. Stop when you're done.", Author: "Unknown"},
		{Text: "Wake up with determination. Go to bed with satisfaction.", Author: "Unknown"},
		{Text: "Little things make big days.", Author: "Unknown"},
		{Text: "The harder you work for something, the greater you'll feel when you achieve it.", Author: "Unknown"},
		{Text: "Do something today that your future self will thank you for.", Author: "Sean Patrick Flanery"},
		{Text: "Great things never come from comfort zones.", Author: "Unknown"},
		{Text: "Dream it. Wish it. Do it.", Author: "Unknown"},
		{Text: "Success doesn't just find you. You have to go out and get it.", Author: "Unknown"},
		{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
		{Text: "If you are working on something that you really care about, you don't have to be pushed. The vision pulls you.", Author: "Steve Jobs"},
		{Text: "Doubt kills more dreams than failure ever will.", Author: "Suzy Kassem"},
		{Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
		{Text: "It's not whether you get knocked down, it's whether you get up.", Author: "Vince Lombardi"},
	}
}

// DefaultReflectionQuestions maps each category to its built-in fallback
func DefaultReflectionQuestions() map[ReflectionCategory]string {
	return map[ReflectionCategory]string{
		ReflectionStressed: "What is one thing weighing on you right now that you could set down, even just for tonight?",
		ReflectionBurnout:  "When did you last feel genuinely rested, and what made that moment possible?",
		ReflectionSleep:    "What is one gentle thought you could hold onto as you let today go?",
	}
}
