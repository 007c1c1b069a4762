package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

// QuestionSelector is the source of randomness for quiz sessions.
// It implements entities.Randomizer and is safe for concurrent use.
type QuestionSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector seeded from the clock.
func NewQuestionSelector() *QuestionSelector {
	return NewQuestionSelectorWithSeed(time.Now().UnixNano())
}

// NewQuestionSelectorWithSeed creates a QuestionSelector with a fixed seed.
func NewQuestionSelectorWithSeed(seed int64) *QuestionSelector {
	return &QuestionSelector{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// RandomTable returns a table in [MinTable, MaxTable].
func (s *QuestionSelector) RandomTable() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.MinTable + s.rng.Intn(entities.MaxTable-entities.MinTable+1)
}

// PickUnasked picks uniformly among the indices in [0, size) missing from
// asked. Once every index has been asked it picks uniformly over all of them.
func (s *QuestionSelector) PickUnasked(asked []int, size int) int {
	if size <= 0 {
		return 0
	}

	candidates := unaskedCandidates(asked, size)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(candidates) == 0 {
		return s.rng.Intn(size)
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// unaskedCandidates returns {0..size-1} minus asked, in ascending order.
func unaskedCandidates(asked []int, size int) []int {
	seen := make(map[int]struct{}, len(asked))
	for _, n := range asked {
		seen[n] = struct{}{}
	}

	out := make([]int, 0, size)
	for i := 0; i < size; i++ {
		if _, ok := seen[i]; ok {
			continue
		}
		out = append(out, i)
	}
	return out
}
