package queries

import (
	"context"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"

	"github.com/samber/lo"
)

type PromotionsQueries interface {
	GetWheel(ctx context.Context) (*WheelView, error)
	GetWallet(ctx context.Context) (*WalletView, error)
	GetCurrentSpin(ctx context.Context) (*SpinView, error)
	ListLiveRewards(ctx context.Context) ([]*RewardView, error)
	// LookupPromoCode checks a code without consuming it.
	LookupPromoCode(ctx context.Context, rawCode string) (*PromoCodeView, error)
}

type promotionsQueriesImpl struct {
	store        *shared.PromotionsStore
	catalog      *reward.Catalog
	daily        bonus.DailyPolicy
	subscription bonus.SubscriptionPolicy
	clock        clock.Clock
	settings     shared.WheelSettings
}

func NewPromotionsQueries(
	store *shared.PromotionsStore,
	catalog *reward.Catalog,
	daily bonus.DailyPolicy,
	subscription bonus.SubscriptionPolicy,
	clk clock.Clock,
	settings shared.WheelSettings,
) PromotionsQueries {
	return &promotionsQueriesImpl{
		store:        store,
		catalog:      catalog,
		daily:        daily,
		subscription: subscription,
		clock:        clk,
		settings:     settings,
	}
}

func (q *promotionsQueriesImpl) GetWheel(ctx context.Context) (*WheelView, error) {
	entries := lo.Map(q.catalog.Definitions(), func(def reward.Definition, i int) WheelEntryView {
		return WheelEntryView{
			Index:           i,
			RewardID:        def.ID(),
			Name:            def.Name(),
			Kind:            def.Kind().String(),
			DiscountPercent: def.DiscountPercent(),
			Percentage:      q.catalog.Percentage(i),
			Winnable:        def.IsWinnable(),
			Fallback:        i == q.catalog.FallbackIndex(),
		}
	})

	return &WheelView{
		SpinCost:    q.settings.SpinCost,
		RevealDelay: q.settings.RevealDelay,
		Entries:     entries,
	}, nil
}

func (q *promotionsQueriesImpl) GetWallet(ctx context.Context) (*WalletView, error) {
	today := q.daily.Today(q.clock.Now())

	var view WalletView
	q.store.View(func(st shared.State) {
		view = WalletView{
			Balance:                 st.Balance.Amount(),
			SpinCost:                q.settings.SpinCost,
			CanSpin:                 st.Balance.CanAfford(q.settings.SpinCost) && !st.Session.IsSpinning(),
			DailyBonusAmount:        q.daily.Amount(),
			DailyBonusClaimedToday:  st.LastDailyBonus.Equal(today),
			LastDailyBonus:          st.LastDailyBonus.String(),
			SubscriptionBonusAmount: q.subscription.Amount(),
			SubscriptionClaimed:     st.SubscriptionClaimed,
			SubscriptionPending:     st.SubscriptionPending,
			SubscriptionURL:         q.subscription.URL(),
		}
	})
	return &view, nil
}

func (q *promotionsQueriesImpl) GetCurrentSpin(ctx context.Context) (*SpinView, error) {
	var view *SpinView
	q.store.View(func(st shared.State) {
		s := st.Session
		if s.IsZero() {
			return
		}
		view = &SpinView{
			ID:        s.ID(),
			State:     s.State().String(),
			Cost:      s.Cost(),
			Drawn:     s.Drawn(),
			StartedAt: s.StartedAt(),
			Failure:   s.Failure(),
		}
		if s.Drawn() {
			def := s.Reward()
			view.RewardIndex = s.RewardIndex()
			view.RewardID = def.ID()
			view.RewardName = def.Name()
			view.Kind = def.Kind().String()
			view.RevealAt = s.RevealAt()
		}
		if s.IsResolved() {
			resolvedAt := s.ResolvedAt()
			view.ResolvedAt = &resolvedAt
		}
		if won := s.Won(); won != nil {
			view.Won = toRewardView(won)
		}
	})
	if view == nil {
		return nil, errs.ErrSpinNotFound
	}
	return view, nil
}

func (q *promotionsQueriesImpl) ListLiveRewards(ctx context.Context) ([]*RewardView, error) {
	now := q.clock.Now()
	var views []*RewardView
	q.store.View(func(st shared.State) {
		views = lo.Map(st.Ledger.Live(now), func(r *wonreward.WonReward, _ int) *RewardView {
			return toRewardView(r)
		})
	})
	return views, nil
}

func (q *promotionsQueriesImpl) LookupPromoCode(ctx context.Context, rawCode string) (*PromoCodeView, error) {
	code, err := promocode.Parse(rawCode)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRedemption)
	}

	now := q.clock.Now()
	var (
		record    *wonreward.WonReward
		lookupErr error
	)
	q.store.View(func(st shared.State) {
		record, lookupErr = st.Ledger.Lookup(code, now)
	})
	if lookupErr != nil {
		return nil, errs.Mark(lookupErr, errs.ErrInvalidRedemption)
	}

	return &PromoCodeView{
		PromoCode:       record.Code().String(),
		RewardID:        record.RewardID(),
		RewardName:      record.DisplayName(),
		DiscountPercent: record.DiscountPercent(),
		ExpiresAt:       record.ExpiresAt(),
	}, nil
}

func toRewardView(r *wonreward.WonReward) *RewardView {
	return &RewardView{
		ID:              r.ID(),
		RewardID:        r.RewardID(),
		DisplayName:     r.DisplayName(),
		PromoCode:       r.Code().String(),
		DiscountPercent: r.DiscountPercent(),
		ExpiresAt:       r.ExpiresAt(),
	}
}
