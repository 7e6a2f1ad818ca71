//go:build unit

package converter_test

import (
	"encoding/json"
	"testing"
	"time"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/infra/repository/converter"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/tests/common/builder"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalars(t *testing.T) {
	t.Run("balance", func(t *testing.T) {
		n, err := converter.DecodeBalance(" 42 ")
		require.NoError(t, err)
		assert.Equal(t, 42, n)

		n, err = converter.DecodeBalance("")
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = converter.DecodeBalance("NaN")
		assert.True(t, errs.Is(err, converter.ErrMalformedBalance))

		assert.Equal(t, "7", converter.EncodeBalance(7))
	})

	t.Run("flag", func(t *testing.T) {
		for raw, want := range map[string]bool{"true": true, "false": false, "": false} {
			got, err := converter.DecodeFlag(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got, raw)
		}
		_, err := converter.DecodeFlag("yes")
		assert.True(t, errs.Is(err, converter.ErrMalformedFlag))
		assert.Equal(t, "true", converter.EncodeFlag(true))
	})

	t.Run("date", func(t *testing.T) {
		d, err := converter.DecodeDate("Wed Mar 05 2025")
		require.NoError(t, err)
		assert.Equal(t, "2025-03-05", converter.EncodeDate(d))
		assert.Equal(t, "", converter.EncodeDate(bonus.Date{}))
	})
}

func TestRewardsRoundTrip(t *testing.T) {
	a := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) { b.PromoCode = "PLASTAAA111" }).MustBuildDomain(t)
	b := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) {
		b.PromoCode = "PLASTBBB222"
		b.DiscountPercent = 15
	}).MustBuildDomain(t)

	encoded, err := converter.EncodeRewards([]*wonreward.WonReward{a, b})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "PLASTAAA111", raw[0]["promoCode"])
	assert.EqualValues(t, a.ExpiresAt().UnixMilli(), raw[0]["expiresAt"])
	assert.EqualValues(t, 2, raw[0]["rewardDefinitionId"])

	decoded, rejected, err := converter.DecodeRewards(encoded)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, decoded, 2)
	assert.Equal(t, a.ID(), decoded[0].ID())
	assert.True(t, a.ExpiresAt().Equal(decoded[0].ExpiresAt()))
	assert.Equal(t, 15, decoded[1].DiscountPercent())

	empty, err := converter.EncodeRewards(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestDecodeRewards(t *testing.T) {
	valid := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) { b.PromoCode = "PLASTGOOD01" })
	legacy := builder.NewWonRewardBuilder().With(func(b *builder.WonRewardBuilder) { b.PromoCode = "PLASTOLD001" })

	mustJSON := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return string(b)
	}

	t.Run("empty payloads", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "null"} {
			rewards, rejected, err := converter.DecodeRewards(raw)
			require.NoError(t, err)
			assert.Empty(t, rewards)
			assert.Empty(t, rejected)
		}
	})

	t.Run("short field aliases", func(t *testing.T) {
		rewards, rejected, err := converter.DecodeRewards(mustJSON([]any{legacy.BuildLegacyStored()}))
		require.NoError(t, err)
		assert.Empty(t, rejected)
		require.Len(t, rewards, 1)
		assert.Equal(t, legacy.DisplayName, rewards[0].DisplayName())
		assert.Equal(t, legacy.RewardID, rewards[0].RewardID())
		assert.Equal(t, legacy.DiscountPercent, rewards[0].DiscountPercent())
	})

	t.Run("bad records are rejected individually", func(t *testing.T) {
		missingExpiry := valid.BuildStored()
		delete(missingExpiry, "expiresAt")
		missingExpiry["promoCode"] = "PLASTNOEXP1"

		zeroDiscount := valid.BuildStored()
		zeroDiscount["discountPercent"] = 0
		zeroDiscount["promoCode"] = "PLASTZERO01"

		payload := mustJSON([]any{valid.BuildStored(), missingExpiry, "not an object", zeroDiscount})

		rewards, rejected, err := converter.DecodeRewards(payload)
		require.NoError(t, err)
		require.Len(t, rewards, 1)
		assert.Equal(t, "PLASTGOOD01", rewards[0].Code().String())

		require.Len(t, rejected, 3)
		reasons := lo.Map(rejected, func(r converter.RejectedRecord, _ int) string { return r.Reason })
		assert.Contains(t, reasons[0], "missing expiresAt")
		assert.Contains(t, string(rejected[1].Raw), "not an object")
		assert.Contains(t, reasons[2], "discount")
	})

	t.Run("non-array payload fails", func(t *testing.T) {
		_, _, err := converter.DecodeRewards(`{"promoCode":"X"}`)
		assert.True(t, errs.Is(err, converter.ErrMalformedRewards))
	})
}

func TestAppendQuarantine(t *testing.T) {
	at := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	rejected := []converter.RejectedRecord{{Raw: json.RawMessage(`{"id":"x"}`), Reason: "missing promoCode"}}

	first, err := converter.AppendQuarantine("", rejected, at)
	require.NoError(t, err)

	second, err := converter.AppendQuarantine(first, rejected, at.Add(time.Hour))
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(second), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "missing promoCode", entries[0]["reason"])
	assert.EqualValues(t, at.UnixMilli(), entries[0]["quarantinedAt"])
	assert.EqualValues(t, at.Add(time.Hour).UnixMilli(), entries[1]["quarantinedAt"])

	t.Run("corrupt existing payload is preserved", func(t *testing.T) {
		out, err := converter.AppendQuarantine("garbage{", rejected, at)
		require.NoError(t, err)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "garbage{", entries[0]["raw"])
	})
}
