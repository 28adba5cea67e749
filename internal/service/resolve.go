package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatops.app/courier/common/llm"
	"chatops.app/courier/common/logger"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/phone"
	"chatops.app/courier/internal/store"
)

// ResolveService consumes the external text-understanding collaborator:
// free-text contact search resolving to canonical identifiers, and
// sentiment/reply suggestions for inbound messages. Identifiers coming back
// from the model are never trusted until they pass the canonical grammar.
type ResolveService interface {
	Resolve(ctx context.Context, term string) ([]Match, error)
	Suggest(ctx context.Context, messageText string) (Suggestion, error)
}

type Match struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Suggestion struct {
	Sentiment string   `json:"sentiment"`
	Replies   []string `json:"replies"`
}

// ResolveConfig bounds the retry policy and the per-call budget.
// Retry lives here, in the caller, never inside the LLM client.
type ResolveConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration
	MaxTokens   int
}

type resolveService struct {
	llm       llm.Client
	directory store.DirectoryStore
	cfg       ResolveConfig
}

func NewResolveService(client llm.Client, directory store.DirectoryStore, cfg ResolveConfig) ResolveService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return &resolveService{llm: client, directory: directory, cfg: cfg}
}

type resolveResult struct {
	Matches []Match `json:"matches"`
}

const resolveSystemPrompt = `You match a search term against a contact directory.
The directory is a JSON array of {"id","name"} entries where id is a chat
identifier of the form "<digits>@c.us". Return every entry that plausibly
matches the term (name fragments, nicknames, transliterations). Return ids
exactly as they appear in the directory. Return an empty list when nothing
matches.`

func (s *resolveService) Resolve(ctx context.Context, term string) ([]Match, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "courier.resolve"})

	dir, err := s.directory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading directory for resolution: %w", err)
	}
	if len(dir) == 0 {
		return []Match{}, nil
	}

	blob, err := json.Marshal(dir)
	if err != nil {
		return nil, fmt.Errorf("encoding directory blob: %w", err)
	}

	var result resolveResult
	err = s.call(ctx, llm.Request{
		SystemPrompt: resolveSystemPrompt,
		UserPrompt:   fmt.Sprintf("Directory:\n%s\n\nSearch term: %s", blob, term),
		SchemaName:   "contact_matches",
		Schema:       llm.GenerateSchema[resolveResult](),
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  llm.Temp(0),
	}, &result)
	if err != nil {
		return nil, err
	}

	return s.validateMatches(ctx, dir, result.Matches), nil
}

// validateMatches drops every match whose identifier fails the canonical
// grammar or names a contact the directory doesn't contain. The model
// suggests; the grammar decides.
func (s *resolveService) validateMatches(ctx context.Context, dir model.Directory, matches []Match) []Match {
	valid := make([]Match, 0, len(matches))
	for _, m := range matches {
		if !phone.ValidChatID(m.ID) {
			slog.WarnContext(ctx, "resolver returned malformed identifier, dropping",
				"id", logger.Truncate(m.ID, 64))
			continue
		}
		if _, ok := dir.ByID(m.ID); !ok {
			slog.WarnContext(ctx, "resolver invented identifier not in directory, dropping",
				"id", m.ID)
			continue
		}
		valid = append(valid, m)
	}
	return valid
}

const suggestSystemPrompt = `You are helping a support operator answer a customer message.
Classify the message sentiment as "positive", "neutral" or "negative", and
propose up to three short reply suggestions in the language of the message.`

func (s *resolveService) Suggest(ctx context.Context, messageText string) (Suggestion, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "courier.resolve"})

	var result Suggestion
	err := s.call(ctx, llm.Request{
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   messageText,
		SchemaName:   "reply_suggestions",
		Schema:       llm.GenerateSchema[Suggestion](),
		MaxTokens:    s.cfg.MaxTokens,
	}, &result)
	if err != nil {
		return Suggestion{}, err
	}
	return result, nil
}

// call runs one LLM request under the configured budget with bounded,
// linearly backed-off retries.
func (s *resolveService) call(ctx context.Context, req llm.Request, result any) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		_, err := s.llm.Chat(callCtx, req, result)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("%w after %s", ErrTimeout, s.cfg.Timeout)
		}
		if !llm.IsRetryable(ctx, err) {
			break
		}
		if attempt < s.cfg.MaxAttempts {
			slog.WarnContext(ctx, "resolver call failed, retrying",
				"attempt", attempt,
				"error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * s.cfg.RetryDelay):
			}
		}
	}
	return fmt.Errorf("text-understanding call failed: %w", lastErr)
}
