//go:build unit || e2e

package promotest

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/infra/kv"
	"prize-wheel/internal/infra/repository"
	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/config"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"
	"prize-wheel/internal/usecase/shared"

	"github.com/stretchr/testify/require"
)

// Start is a Wednesday noon in UTC; the test config uses UTC for bonus dates.
var Start = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

// Draws that land on the default catalog's two winnable entries: the
// printing discount (index 1) and the printed toys discount (index 5).
const (
	DiscountDraw = 0.1
	ToysDraw     = 0.9
)

type options struct {
	cfg     config.Config
	now     time.Time
	catalog *reward.Catalog
	drawer  reward.Drawer
	codes   promocode.Generator
	kv      kv.Store
	repo    shared.StateRepository
	seed    map[string]string
}

type Option func(*options)

func WithConfig(mutate func(*config.Config)) Option {
	return func(o *options) { mutate(&o.cfg) }
}

func WithNow(t time.Time) Option {
	return func(o *options) { o.now = t }
}

func WithCatalog(c *reward.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func WithDraws(draws ...float64) Option {
	return func(o *options) { o.drawer = NewSequenceDrawer(draws...) }
}

func WithCodes(g promocode.Generator) Option {
	return func(o *options) { o.codes = g }
}

// WithKV shares a store between environments, e.g. to simulate a restart.
func WithKV(store kv.Store) Option {
	return func(o *options) { o.kv = store }
}

// WithRepository bypasses the KV layer entirely.
func WithRepository(repo shared.StateRepository) Option {
	return func(o *options) { o.repo = repo }
}

// WithBalance seeds the persisted balance before the store loads.
func WithBalance(n int) Option {
	return WithSeed(converter.KeyBalance, strconv.Itoa(n))
}

func WithSeed(key, value string) Option {
	return func(o *options) {
		if o.seed == nil {
			o.seed = map[string]string{}
		}
		o.seed[key] = value
	}
}

// Env is the whole promotions use case layer over a virtual clock.
type Env struct {
	Config    config.Config
	Clock     *clock.MockClock
	KV        kv.Store
	Repo      shared.StateRepository
	Store     *shared.PromotionsStore
	Publisher *RecordingPublisher
	Catalog   *reward.Catalog
	Settings  shared.WheelSettings

	Spins       commands.SpinCommands
	Bonuses     commands.BonusCommands
	Redemptions commands.RedemptionCommands
	Sweeper     *commands.ExpirySweeper
	Queries     queries.PromotionsQueries
}

func New(t testing.TB, opts ...Option) *Env {
	t.Helper()

	o := options{
		cfg:     config.NewTestConfig(),
		now:     Start,
		catalog: reward.DefaultCatalog(),
		drawer:  NewSequenceDrawer(DiscountDraw),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(o.now)

	if o.codes == nil {
		gen, err := promocode.NewRandomGenerator(o.cfg.Wheel.PromoCodePrefix, o.cfg.Wheel.PromoCodeLength)
		require.NoError(t, err)
		o.codes = gen
	}

	store := o.kv
	if store == nil {
		store = kv.NewMemoryStore()
	}
	if len(o.seed) > 0 {
		require.NoError(t, store.SetMany(context.Background(), o.seed))
	}

	repo := o.repo
	if repo == nil {
		repo = repository.NewStateRepository(store, clk, logger)
	}

	retry := shared.RetryPolicy{MaxRetries: o.cfg.State.PersistMaxRetries, BaseDelay: o.cfg.State.PersistRetryBase}
	promotions, err := shared.NewPromotionsStore(context.Background(), repo, retry, logger)
	require.NoError(t, err)

	daily, err := bonus.NewDailyPolicy(o.cfg.Bonus.DailyAmount, time.UTC)
	require.NoError(t, err)
	subscription, err := bonus.NewSubscriptionPolicy(o.cfg.Bonus.SubscriptionAmount, o.cfg.Bonus.SubscriptionConfirmDelay, o.cfg.Bonus.SubscriptionURL)
	require.NoError(t, err)

	settings := shared.WheelSettings{
		SpinCost:             o.cfg.Wheel.SpinCost,
		RevealDelay:          o.cfg.Wheel.RevealDelay,
		RewardTTL:            o.cfg.Wheel.RewardTTL,
		PromoCodeMaxAttempts: o.cfg.Wheel.PromoCodeMaxAttempts,
	}
	publisher := NewRecordingPublisher()

	return &Env{
		Config:      o.cfg,
		Clock:       clk,
		KV:          store,
		Repo:        repo,
		Store:       promotions,
		Publisher:   publisher,
		Catalog:     o.catalog,
		Settings:    settings,
		Spins:       commands.NewSpinCommands(promotions, o.catalog, o.drawer, o.codes, clk, clk, publisher, settings, logger),
		Bonuses:     commands.NewBonusCommands(promotions, daily, subscription, clk, clk, publisher, logger),
		Redemptions: commands.NewRedemptionCommands(promotions, clk, publisher, logger),
		Sweeper:     commands.NewExpirySweeper(promotions, clk, clk, publisher, o.cfg.Wheel.SweepInterval, logger),
		Queries:     queries.NewPromotionsQueries(promotions, o.catalog, daily, subscription, clk, settings),
	}
}

// Restart builds a fresh environment over the same KV store at the current
// virtual time. Volatile state (spin session, pending subscription) is lost.
func (e *Env) Restart(t testing.TB, opts ...Option) *Env {
	t.Helper()
	base := []Option{WithKV(e.KV), WithNow(e.Clock.Now()), WithCatalog(e.Catalog), WithConfig(func(c *config.Config) { *c = e.Config })}
	return New(t, append(base, opts...)...)
}

// Balance reads the committed in-memory balance.
func (e *Env) Balance() int {
	var b int
	e.Store.View(func(st shared.State) { b = st.Balance.Amount() })
	return b
}

// Persisted reads the raw KV value for key.
func (e *Env) Persisted(t testing.TB, key string) (string, bool) {
	t.Helper()
	values, err := e.KV.GetMany(context.Background(), []string{key})
	require.NoError(t, err)
	v, ok := values[key]
	return v, ok
}

// SpinAndReveal runs one spin to completion.
func (e *Env) SpinAndReveal(t testing.TB) (*commands.SpinResult, *queries.SpinView) {
	t.Helper()
	res, err := e.Spins.AttemptSpin(context.Background())
	require.NoError(t, err)
	e.Clock.Advance(e.Settings.RevealDelay)
	view, err := e.Queries.GetCurrentSpin(context.Background())
	require.NoError(t, err)
	return res, view
}
