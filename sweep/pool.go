package sweep

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEach 对 [0, n) 中每个下标调用 fn。
//
// limit <= 1 时顺序执行；limit < 0 时并发数为 GOMAXPROCS。
// fn 只应写入下标 i 对应的结果槽位，完成顺序不影响输出顺序。
// 任一 fn 返回错误后，尚未开始的任务不再执行。
func ForEach(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) error {
	if limit < 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if limit <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return fn(egCtx, i)
		})
	}
	return eg.Wait()
}
