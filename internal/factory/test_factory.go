package factory

import (
	"time"

	"github.com/matiasolis/impostor-party/internal/dependencies/mocks"
	"github.com/matiasolis/impostor-party/internal/storage/memory"
	"github.com/matiasolis/impostor-party/internal/testutil"
)

// TestApp bundles an App with its mocked dependencies for tests
type TestApp struct {
	*App
	MemStorage *memory.Storage
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewForTesting creates an App backed by in-memory storage, a mock clock,
// and a mock random source
func NewForTesting() *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()

	app := newWithDependencies(store, clk, rnd, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MemStorage: store,
		MockClock:  clk,
		MockRandom: rnd,
	}
}
