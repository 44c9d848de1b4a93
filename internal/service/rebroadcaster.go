package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mempush/pkg/lock"
	"mempush/pkg/logger"
	"mempush/pkg/monitor"
	"mempush/pkg/network"
)

const rebroadcastLockKey = "cron:lock:rebroadcast"

// Rebroadcaster 定期重新推送所有未确认的交易
type Rebroadcaster struct {
	cron     *cron.Cron
	spec     string
	store    TransactionStore
	svc      TransactionService
	locker   lock.DistributedLock
	lockTTL  time.Duration
	pageSize int

	// ctx 在 Stop 时取消, 正在执行的任务随之退出
	ctx    context.Context
	cancel context.CancelFunc
}

// cronLogger 把 cron 的日志接到 zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}

func NewRebroadcaster(spec string, store TransactionStore, svc TransactionService, locker lock.DistributedLock, lockTTL time.Duration, pageSize int) *Rebroadcaster {
	if locker == nil {
		locker = lock.LocalLock{}
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Rebroadcaster{
		// 上一轮没跑完时跳过本轮, 同一笔交易不会被并发推送
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{}))),
		spec:     spec,
		store:    store,
		svc:      svc,
		locker:   locker,
		lockTTL:  lockTTL,
		pageSize: pageSize,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *Rebroadcaster) Start() error {
	if _, err := r.cron.AddFunc(r.spec, func() { r.RunOnce(r.ctx) }); err != nil {
		return err
	}
	r.cron.Start()
	logger.Info("Rebroadcaster started", zap.String("spec", r.spec))
	return nil
}

// Stop 取消正在执行的任务并等待其退出
func (r *Rebroadcaster) Stop() {
	r.cancel()
	<-r.cron.Stop().Done()
	logger.Info("Rebroadcaster stopped")
}

// RunOnce 推送所有网络中未确认的交易, 返回尝试推送的数量
func (r *Rebroadcaster) RunOnce(ctx context.Context) int {
	// 多实例部署时只有一个实例执行
	locked, err := r.locker.Acquire(ctx, rebroadcastLockKey, r.lockTTL)
	if err != nil || !locked {
		logger.Debug("rebroadcast skipped, lock held elsewhere", zap.Error(err))
		return 0
	}
	defer func() {
		// 任务被取消后仍要释放锁
		if err := r.locker.Release(context.WithoutCancel(ctx), rebroadcastLockKey); err != nil {
			logger.Warn("release rebroadcast lock failed", zap.Error(err))
		}
	}()

	// 锁过期前必须结束, 否则其他实例会拿到锁重复推送
	runCtx := ctx
	if r.lockTTL > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.lockTTL)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		monitor.Business.RebroadcastDuration.Observe(time.Since(start).Seconds())
	}()

	total := 0
	for _, net := range network.All {
		total += r.rebroadcastNetwork(runCtx, net)
	}
	logger.Info("rebroadcast finished", zap.Int("pushed", total), zap.Duration("took", time.Since(start)))
	return total
}

func (r *Rebroadcaster) rebroadcastNetwork(ctx context.Context, net network.Network) int {
	pushed := 0
	var afterID uint64
	for {
		if ctx.Err() != nil {
			return pushed
		}
		txs, err := r.store.ListUnconfirmed(ctx, net, afterID, r.pageSize)
		if err != nil {
			logger.Error("list unconfirmed failed", zap.String("network", string(net)), zap.Error(err))
			return pushed
		}

		for _, tx := range txs {
			if ctx.Err() != nil {
				return pushed
			}
			res, err := r.svc.Push(ctx, net, tx.TxID)
			if err != nil {
				logger.Warn("rebroadcast push failed", zap.String("network", string(net)), zap.String("txid", tx.TxID), zap.Error(err))
			} else {
				logger.Debug("rebroadcast push", zap.String("txid", tx.TxID), zap.String("status", res.Status))
			}
			pushed++
			afterID = tx.ID
		}

		if len(txs) < r.pageSize {
			return pushed
		}
	}
}
