package questions

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/metrics"
	"github.com/acqu1red/osnovabot/store"
	"github.com/acqu1red/osnovabot/types"
)

// Notifier delivers question events to the bot service. Delivery is advisory:
// the ledger write is the durable fact and stands regardless of the outcome.
type Notifier interface {
	QuestionCreated(ctx context.Context, ev types.QuestionEvent) error
	AnswerReady(ctx context.Context, ev types.AnswerEvent) error
}

// Service owns the unanswered -> answered lifecycle of question records.
type Service struct {
	store    *store.Store
	notifier Notifier
}

func NewService(s *store.Store, n Notifier) *Service {
	return &Service{store: s, notifier: n}
}

// Submit appends a new unanswered question and fires a QuestionCreated
// notification once the write has committed.
func (s *Service) Submit(q types.Question) (types.Question, error) {
	q.Answer = nil
	if q.CreatedAt == "" {
		q.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := store.Append(s.store, store.Questions, q); err != nil {
		return types.Question{}, err
	}
	metrics.RecordsAppended.WithLabelValues(string(store.Questions)).Inc()

	if s.notifier != nil {
		ev := types.QuestionEvent{
			UserID:   q.UserID,
			Username: q.Username,
			Message:  q.Message,
			FileURL:  q.FileURL,
		}
		go func() {
			if err := s.notifier.QuestionCreated(context.Background(), ev); err != nil {
				log.Warn().Err(err).Int64("user_id", ev.UserID).Msg("question notification failed")
			}
		}()
	}
	return q, nil
}

// Answer sets the answer on the user's oldest unanswered question. At most one
// record transitions per call; zero matches is a no-op, not an error. An answer
// already set is never overwritten.
func (s *Service) Answer(userID int64, answer string) (int, error) {
	ok, err := store.UpdateFirst(s.store, store.Questions,
		func(q types.Question) bool { return q.UserID == userID && !q.Answered() },
		func(q *types.Question) { q.Answer = &answer })
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	metrics.QuestionsAnswered.Inc()

	if s.notifier != nil {
		ev := types.AnswerEvent{UserID: userID, Answer: answer}
		go func() {
			if err := s.notifier.AnswerReady(context.Background(), ev); err != nil {
				log.Warn().Err(err).Int64("user_id", ev.UserID).Msg("answer notification failed")
			}
		}()
	}
	return 1, nil
}

// ListForUser returns the user's questions, answered and unanswered, in
// insertion order.
func (s *Service) ListForUser(userID int64) ([]types.Question, error) {
	all, err := store.List[types.Question](s.store, store.Questions)
	if err != nil {
		return nil, err
	}
	out := make([]types.Question, 0, len(all))
	for _, q := range all {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

// ListAll returns the full collection. Callers must hold the admin flag.
func (s *Service) ListAll() ([]types.Question, error) {
	return store.List[types.Question](s.store, store.Questions)
}
