package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sidequest/backend/internal/domain/content"
	"github.com/sidequest/backend/internal/infrastructure/aigateway"
	"github.com/sidequest/backend/internal/infrastructure/cache"
	"github.com/sidequest/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const quotesSystemPrompt = `You generate motivational quotes. Return ONLY a JSON array of 30 objects with keys "text" and "author". No markdown, no explanation. Mix famous and lesser-known authors. Make them diverse in theme: perseverance, self-belief, growth, gratitude, courage, kindness, ambition.`

var reflectionPrompts = map[content.ReflectionCategory]string{
	content.ReflectionStressed: "Generate exactly ONE thoughtful, calming reflection question that helps someone who is feeling stressed. The question should encourage self-awareness and stress relief. Be warm and empathetic. Return ONLY a JSON object with a single key 'question' containing the question string. No markdown.",
	content.ReflectionBurnout:  "Generate exactly ONE thoughtful reflection question that helps someone experiencing study or work burnout. The question should encourage rest, perspective, and recovery. Be warm and supportive. Return ONLY a JSON object with a single key 'question' containing the question string. No markdown.",
	content.ReflectionSleep:    "Generate exactly ONE calming reflection question that helps someone struggling with sleep issues. The question should encourage relaxation and peaceful thoughts. Be gentle and soothing. Return ONLY a JSON object with a single key 'question' containing the question string. No markdown.",
}

// QuotesResponse is a day's worth of motivational quotes
type QuotesResponse struct {
	Date   string          `json:"date"`
	Quotes []content.Quote `json:"quotes"`
}

// DailyReflectionRequest selects the reflection theme
type DailyReflectionRequest struct {
	Category string `json:"category" binding:"required,oneof=stressed burnout sleep"`
}

// ReflectionResponse is the day's reflection question for one category
type ReflectionResponse struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Question string `json:"question"`
}

// ContentService serves generated daily content. Content is generated
// once per day per key and cached; when the gateway fails or returns
// something unparseable the built-in defaults are served instead, so
// these endpoints never fail on upstream trouble.
type ContentService struct {
	completer aigateway.Completer
	cache     cache.ContentCache
	logger    *zap.Logger
	now       func() time.Time
}

// NewContentService creates a new ContentService
func NewContentService(completer aigateway.Completer, contentCache cache.ContentCache, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		completer: completer,
		cache:     contentCache,
		logger:    logger,
		now:       time.Now,
	}
}

// DailyQuotes returns today's quote list, generating it on first call
func (s *ContentService) DailyQuotes(ctx context.Context) (*QuotesResponse, error) {
	today := s.today()
	key := "quotes:" + today

	if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
		var quotes []content.Quote
		if err := json.Unmarshal([]byte(cached), &quotes); err == nil {
			return &QuotesResponse{Date: today, Quotes: quotes}, nil
		}
	}

	quotes := s.generateQuotes(ctx, today)
	if payload, err := json.Marshal(quotes); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.ttl()); err != nil {
			logger.WithLogger(ctx, s.logger).Warn("failed to cache daily quotes", zap.Error(err))
		}
	}

	return &QuotesResponse{Date: today, Quotes: quotes}, nil
}

func (s *ContentService) generateQuotes(ctx context.Context, today string) []content.Quote {
	user := fmt.Sprintf("Generate 30 unique motivational quotes for today (%s). Use seed %s so they differ each day.", today, today)

	raw, err := s.completer.Complete(ctx, quotesSystemPrompt, user)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("quote generation failed, serving defaults", zap.Error(err))
		return content.DefaultQuotes()
	}

	var quotes []content.Quote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil || len(quotes) == 0 {
		logger.WithLogger(ctx, s.logger).Warn("quote generation returned unparseable content, serving defaults", zap.Error(err))
		return content.DefaultQuotes()
	}
	return quotes
}

// DailyReflection returns today's reflection question for a category,
// generating it on first call
func (s *ContentService) DailyReflection(ctx context.Context, req DailyReflectionRequest) (*ReflectionResponse, error) {
	category := content.ReflectionCategory(req.Category)
	if err := content.ValidateReflectionCategory(category); err != nil {
		return nil, err
	}

	today := s.today()
	key := fmt.Sprintf("reflection:%s:%s", today, category)

	if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
		return &ReflectionResponse{Date: today, Category: req.Category, Question: cached}, nil
	}

	question := s.generateReflection(ctx, today, category)
	if err := s.cache.Set(ctx, key, question, s.ttl()); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to cache daily reflection", zap.Error(err))
	}

	return &ReflectionResponse{Date: today, Category: req.Category, Question: question}, nil
}

func (s *ContentService) generateReflection(ctx context.Context, today string, category content.ReflectionCategory) string {
	user := fmt.Sprintf("Generate a unique reflection question for %s. Use seed: %s-%s", today, today, category)

	raw, err := s.completer.Complete(ctx, reflectionPrompts[category], user)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("reflection generation failed, serving default", zap.Error(err))
		return content.DefaultReflectionQuestions()[category]
	}

	var parsed struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Question == "" {
		logger.WithLogger(ctx, s.logger).Warn("reflection generation returned unparseable content, serving default", zap.Error(err))
		return content.DefaultReflectionQuestions()[category]
	}
	return parsed.Question
}

func (s *ContentService) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// ttl keeps entries until the next UTC midnight, when the date key
// rolls over anyway
func (s *ContentService) ttl() time.Duration {
	now := s.now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return midnight.Sub(now)
}
