package sweep

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/rushteam/featsweep/core"
)

// trialKey 由表指纹、种子、target、回归器、k 与特征子集（有序）决定。
func trialKey(ectx *core.EvalContext, features []string, k int) string {
	h := xxhash.New()
	_, _ = h.WriteString(ectx.Regressor.Name())
	_, _ = h.WriteString("\x00" + ectx.Config.Target)
	_, _ = h.WriteString("\x00" + strconv.FormatInt(ectx.Config.Seed, 10))
	_, _ = h.WriteString("\x00" + strconv.Itoa(k))
	for _, f := range features {
		_, _ = h.WriteString("\x00" + f)
	}
	return fmt.Sprintf("trial:%016x:%016x", ectx.Table.Fingerprint(), h.Sum64())
}

func loadCached(ctx context.Context, ectx *core.EvalContext, key string) (float64, bool) {
	b, err := ectx.Cache.Get(ctx, key)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			ectx.Log().Warn().Err(err).Str("store", ectx.Cache.Name()).Str("key", key).Msg("trial cache read failed")
		}
		return 0, false
	}
	if len(b) != 8 {
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), true
}

func storeCached(ctx context.Context, ectx *core.EvalContext, key string, rmse float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(rmse))
	if err := ectx.Cache.Set(ctx, key, buf[:], 0); err != nil {
		ectx.Log().Warn().Err(err).Str("store", ectx.Cache.Name()).Str("key", key).Msg("trial cache write failed")
	}
}
