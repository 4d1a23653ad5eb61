package factory

import (
	"log/slog"
	"time"

	"github.com/mcoot/rpgroster/internal/dependencies/mocks"
	"github.com/mcoot/rpgroster/internal/storage"
	"github.com/mcoot/rpgroster/internal/storage/memory"
	"github.com/mcoot/rpgroster/internal/testutil"
)

// TestClockStart is the instant the mock clock of a TestApp starts at
var TestClockStart = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// TestApp is an App whose clock and random source are scripted
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

type testOptions struct {
	store       storage.Storage
	storageType string
	logger      *slog.Logger
}

// TestOption customises NewTestApp
type TestOption func(*testOptions)

// WithStorage runs the app on store instead of a fresh memory store
func WithStorage(storageType string, store storage.Storage) TestOption {
	return func(o *testOptions) {
		o.store = store
		o.storageType = storageType
	}
}

// WithLogger replaces the discarding logger
func WithLogger(logger *slog.Logger) TestOption {
	return func(o *testOptions) {
		o.logger = logger
	}
}

// NewTestApp wires an App around mock dependencies. Without options it uses
// an empty memory store and discards logs.
func NewTestApp(opts ...TestOption) *TestApp {
	o := testOptions{storageType: StorageTypeMemory}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = memory.New()
	}
	if o.logger == nil {
		o.logger = testutil.NopLogger()
	}

	clk := mocks.NewMockClock(TestClockStart)
	rnd := mocks.NewMockRandom()

	app := newWithDependencies(o.store, clk, rnd, o.logger)
	app.StorageType = o.storageType

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
	}
}
