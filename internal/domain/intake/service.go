package intake

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
)

// Service drives intake conversations: it loads the matching conversation
// from the registry, advances it one turn and writes it back. Completed
// intakes are handed to the Recorder synchronously, before the reply is
// returned, and a Recorder failure never alters the reply.
type Service struct {
	flow     *conversation.Flow
	registry conversation.Registry
	recorder Recorder
	log      zerolog.Logger
}

// NewService wires the dialogue flow with a completion hook that persists
// the finished record. recorder may be nil in tests that only exercise the
// dialogue.
func NewService(registry conversation.Registry, recorder Recorder, resetKeyword string, log zerolog.Logger, opts ...conversation.Option) *Service {
	s := &Service{
		registry: registry,
		recorder: recorder,
		log:      log.With().Str("component", "intake-service").Logger(),
	}

	opts = append(opts, conversation.WithCompletionHook(s.persist))
	s.flow = conversation.NewFlow(resetKeyword, log, opts...)
	return s
}

// Chat runs one turn for the given conversation key and reports the stage
// the conversation landed on.
func (s *Service) Chat(ctx context.Context, key conversation.Key, message string) (string, conversation.Stage) {
	conv := s.registry.GetOrCreate(key)
	reply := s.flow.Advance(ctx, conv, message)
	s.registry.Put(key, conv)
	return reply, conv.Stage
}

// Reset drops the conversation entirely so the next turn starts fresh.
func (s *Service) Reset(key conversation.Key) {
	s.registry.Remove(key)
}

func (s *Service) persist(ctx context.Context, fields conversation.Fields) error {
	if s.recorder == nil {
		return nil
	}
	rec := NewRecord(fields, time.Now())
	if err := s.recorder.Save(ctx, rec); err != nil {
		return err
	}
	s.log.Info().Str("email", rec.Email).Msg("intake record persisted")
	return nil
}
