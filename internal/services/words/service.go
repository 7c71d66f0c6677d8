package words

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/matiasolis/impostor-party/internal/dependencies/random"
	"github.com/matiasolis/impostor-party/internal/storage"
)

// DefaultWords is the built-in word pool used when no file has been loaded
var DefaultWords = []string{
	"PIZZA", "BANANA", "COMPUTER", "ELEPHANT", "SUNGLASSES",
	"GUITAR", "MOUNTAIN", "OCEAN", "BUTTERFLY", "CHOCOLATE",
	"RAINBOW", "TELESCOPE", "KEYBOARD", "TREASURE", "VOLCANO",
	"SPACESHIP", "DINOSAUR", "PYRAMID", "LIGHTHOUSE", "CASTLE",
	"JELLYFISH", "DRAGON", "WIZARD", "UNICORN", "ROCKET",
	"DIAMOND", "CRYSTAL", "MAGIC", "PIRATE", "TORNADO",
}

// Service provides the pool of candidate round words
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu    sync.RWMutex
	words []string
}

// New creates a new word pool service seeded with the default list
func New(store storage.Storage, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		random:  rnd,
		logger:  logger.With(slog.String("component", "words")),
		words:   DefaultWords,
	}
}

// LoadFromStorage loads the word pool from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWords(ctx)
	if err != nil {
		return err
	}
	s.setWords(words)
	return nil
}

// LoadFromFile loads the word pool from a file (one word per line) and
// persists it to storage for future use. Words are upper-cased.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveWords(ctx, words); err != nil {
		return err
	}

	s.setWords(words)
	s.logger.Info("word pool loaded", slog.String("path", path), slog.Int("count", len(words)))
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.setWords(words)
}

func (s *Service) setWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(words) == 0 {
		return
	}
	s.words = make([]string, len(words))
	copy(s.words, words)
}

// RandomWord returns a uniformly selected word from the pool
func (s *Service) RandomWord() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words[s.random.Intn(len(s.words))]
}

// Count returns the number of words in the pool
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
