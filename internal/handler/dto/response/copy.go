package response

import (
	"time"

	"prize-wheel/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

// Timestamps leave the API as epoch milliseconds, matching the persisted
// reward records.
var timeToMillis = copier.TypeConverter{
	SrcType: time.Time{},
	DstType: int64(0),
	Fn: func(src any) (any, error) {
		t, ok := src.(time.Time)
		if !ok {
			return nil, errs.Newf("expected time.Time, got %T", src)
		}
		if t.IsZero() {
			return int64(0), nil
		}
		return t.UnixMilli(), nil
	},
}

func copyInto(dst, src any) error {
	err := copier.CopyWithOption(dst, src, copier.Option{
		DeepCopy:   true,
		Converters: []copier.TypeConverter{timeToMillis},
	})
	if err != nil {
		return errs.Wrap(err, "map response")
	}
	return nil
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
