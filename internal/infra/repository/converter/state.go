package converter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/wonreward"
	"prize-wheel/internal/pkg/errs"

	"github.com/samber/lo"
)

// Persisted keys. The names are kept from the browser storage layout so
// exported state can be imported as-is.
const (
	KeyBalance             = "plasticBalance"
	KeyLastDailyBonus      = "lastDailyLogin"
	KeySubscriptionClaimed = "telegramSubscribed"
	KeyWonRewards          = "wonPrizes"
	KeyQuarantine          = "wonPrizesQuarantine"
)

var StateKeys = []string{
	KeyBalance,
	KeyLastDailyBonus,
	KeySubscriptionClaimed,
	KeyWonRewards,
	KeyQuarantine,
}

var (
	ErrMalformedBalance = errs.New("malformed balance")
	ErrMalformedFlag    = errs.New("malformed boolean flag")
	ErrMalformedRewards = errs.New("malformed won rewards payload")
	ErrMalformedRecord  = errs.New("malformed won reward record")
)

func EncodeBalance(amount int) string {
	return strconv.Itoa(amount)
}

func DecodeBalance(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Mark(errs.Wrapf(err, "balance %q", raw), ErrMalformedBalance)
	}
	return n, nil
}

func EncodeDate(d bonus.Date) string {
	return d.String()
}

func DecodeDate(raw string) (bonus.Date, error) {
	return bonus.ParseDate(strings.TrimSpace(raw))
}

func EncodeFlag(v bool) string {
	return strconv.FormatBool(v)
}

func DecodeFlag(raw string) (bool, error) {
	switch strings.TrimSpace(raw) {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	default:
		return false, errs.Mark(errs.Newf("flag %q", raw), ErrMalformedFlag)
	}
}

type wonRewardRecord struct {
	ID              string `json:"id"`
	RewardID        int    `json:"rewardDefinitionId"`
	DisplayName     string `json:"displayName"`
	PromoCode       string `json:"promoCode"`
	DiscountPercent int    `json:"discountPercent"`
	ExpiresAt       int64  `json:"expiresAt"`
}

// storedRecord accepts both the current field names and the short aliases.
type storedRecord struct {
	ID                 *string `json:"id"`
	RewardDefinitionID *int    `json:"rewardDefinitionId"`
	PrizeID            *int    `json:"prizeId"`
	DisplayName        *string `json:"displayName"`
	Name               *string `json:"name"`
	PromoCode          *string `json:"promoCode"`
	DiscountPercent    *int    `json:"discountPercent"`
	Discount           *int    `json:"discount"`
	ExpiresAt          *int64  `json:"expiresAt"`
}

func EncodeRewards(rewards []*wonreward.WonReward) (string, error) {
	records := lo.Map(rewards, func(r *wonreward.WonReward, _ int) wonRewardRecord {
		return wonRewardRecord{
			ID:              r.ID(),
			RewardID:        r.RewardID(),
			DisplayName:     r.DisplayName(),
			PromoCode:       r.Code().String(),
			DiscountPercent: r.DiscountPercent(),
			ExpiresAt:       r.ExpiresAt().UnixMilli(),
		}
	})
	b, err := json.Marshal(records)
	if err != nil {
		return "", errs.Wrap(err, "encode won rewards")
	}
	return string(b), nil
}

// RejectedRecord is a persisted record that failed strict decoding.
type RejectedRecord struct {
	Raw    json.RawMessage `json:"raw"`
	Reason string          `json:"reason"`
}

// DecodeRewards strictly decodes the persisted reward array. Records that
// fail validation are returned as rejected instead of failing the whole
// payload. An error means the payload itself is not a JSON array.
func DecodeRewards(raw string) ([]*wonreward.WonReward, []RejectedRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil, nil, errs.Mark(errs.Wrap(err, "won rewards"), ErrMalformedRewards)
	}

	var (
		rewards  []*wonreward.WonReward
		rejected []RejectedRecord
	)
	for _, el := range elements {
		r, err := decodeRecord(el)
		if err != nil {
			rejected = append(rejected, RejectedRecord{Raw: el, Reason: err.Error()})
			continue
		}
		rewards = append(rewards, r)
	}
	return rewards, rejected, nil
}

func decodeRecord(el json.RawMessage) (*wonreward.WonReward, error) {
	var rec storedRecord
	dec := json.NewDecoder(bytes.NewReader(el))
	if err := dec.Decode(&rec); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode record"), ErrMalformedRecord)
	}

	id := lo.FromPtr(rec.ID)
	rewardID := firstSet(rec.RewardDefinitionID, rec.PrizeID)
	name := firstSet(rec.DisplayName, rec.Name)
	percent := firstSet(rec.DiscountPercent, rec.Discount)

	switch {
	case rec.ID == nil:
		return nil, errs.Mark(errs.New("missing id"), ErrMalformedRecord)
	case rewardID == nil:
		return nil, errs.Mark(errs.New("missing rewardDefinitionId"), ErrMalformedRecord)
	case name == nil:
		return nil, errs.Mark(errs.New("missing displayName"), ErrMalformedRecord)
	case rec.PromoCode == nil:
		return nil, errs.Mark(errs.New("missing promoCode"), ErrMalformedRecord)
	case percent == nil:
		return nil, errs.Mark(errs.New("missing discountPercent"), ErrMalformedRecord)
	case rec.ExpiresAt == nil:
		return nil, errs.Mark(errs.New("missing expiresAt"), ErrMalformedRecord)
	}

	r, err := wonreward.Reconstruct(id, *rewardID, *name, *rec.PromoCode, *percent, time.UnixMilli(*rec.ExpiresAt).UTC())
	if err != nil {
		return nil, errs.Mark(err, ErrMalformedRecord)
	}
	return r, nil
}

type quarantineEntry struct {
	RejectedRecord
	QuarantinedAt int64 `json:"quarantinedAt"`
}

// AppendQuarantine adds rejected records to an existing quarantine payload.
// A corrupt existing payload is kept as a single raw entry.
func AppendQuarantine(existing string, rejected []RejectedRecord, at time.Time) (string, error) {
	var entries []quarantineEntry
	if existing = strings.TrimSpace(existing); existing != "" {
		if err := json.Unmarshal([]byte(existing), &entries); err != nil {
			entries = []quarantineEntry{{
				RejectedRecord: RejectedRecord{Raw: RawJSON(existing), Reason: "unreadable quarantine payload"},
				QuarantinedAt:  at.UnixMilli(),
			}}
		}
	}
	for _, r := range rejected {
		entries = append(entries, quarantineEntry{RejectedRecord: r, QuarantinedAt: at.UnixMilli()})
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return "", errs.Wrap(err, "encode quarantine")
	}
	return string(b), nil
}

// RawJSON keeps non-JSON text as a JSON string so it can be embedded.
func RawJSON(s string) json.RawMessage {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	b, _ := json.Marshal(s)
	return b
}

func firstSet[T any](primary, alias *T) *T {
	if primary != nil {
		return primary
	}
	return alias
}
