// internal/app/system/workers/accountsweeper.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/metrics"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	studentstore "github.com/mwsociety/memberhub/internal/app/store/students"
	volunteerstore "github.com/mwsociety/memberhub/internal/app/store/volunteers"
)

// AccountSweeper is a background worker that deletes stale, never-finalized
// accounts: students, members and volunteers that registered but did not
// complete payment/approval within the retention window.
//
// The sweeper holds no state of its own and takes no locks; it interleaves
// safely with foreground writes because finalization clears is_active
// before the account could ever match the sweep filter, and DeleteMany on
// an already-deleted record is a no-op.
type AccountSweeper struct {
	students   *studentstore.Store
	members    *memberstore.Store
	volunteers *volunteerstore.Store
	log        *zap.Logger
	interval   time.Duration
	retention  time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// SweepResult reports how many accounts one pass deleted per category.
type SweepResult struct {
	Students   int64
	Members    int64
	Volunteers int64
}

// NewAccountSweeper creates the sweeper.
//
// Parameters:
//   - interval: how often to sweep (default one hour)
//   - retention: how long an unfinalized account may live (default 30 days)
func NewAccountSweeper(students *studentstore.Store, members *memberstore.Store, volunteers *volunteerstore.Store, logger *zap.Logger, interval, retention time.Duration) *AccountSweeper {
	return &AccountSweeper{
		students:   students,
		members:    members,
		volunteers: volunteers,
		log:        logger,
		interval:   interval,
		retention:  retention,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background sweep loop. The first pass runs immediately.
func (w *AccountSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("account sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AccountSweeper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("account sweeper stopped")
}

func (w *AccountSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweepWithTimeout()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweepWithTimeout()
		}
	}
}

func (w *AccountSweeper) sweepWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	w.Sweep(ctx)
}

// Sweep runs one pass. The three categories are independent: a failure in
// one is logged and the others still run, and nothing here can take the
// process down.
func (w *AccountSweeper) Sweep(ctx context.Context) SweepResult {
	cutoff := time.Now().UTC().Add(-w.retention)
	var res SweepResult

	if n, err := w.students.DeleteStaleActive(ctx, cutoff); err != nil {
		w.log.Error("sweep students failed", zap.Error(err))
	} else {
		res.Students = n
		metrics.SweptAccountsTotal.WithLabelValues("students").Add(float64(n))
	}

	if n, err := w.members.DeleteStaleActive(ctx, cutoff); err != nil {
		w.log.Error("sweep members failed", zap.Error(err))
	} else {
		res.Members = n
		metrics.SweptAccountsTotal.WithLabelValues("members").Add(float64(n))
	}

	if n, err := w.volunteers.DeleteStaleActive(ctx, cutoff); err != nil {
		w.log.Error("sweep volunteers failed", zap.Error(err))
	} else {
		res.Volunteers = n
		metrics.SweptAccountsTotal.WithLabelValues("volunteers").Add(float64(n))
	}

	if res.Students > 0 || res.Members > 0 || res.Volunteers > 0 {
		w.log.Info("swept stale accounts",
			zap.Time("cutoff", cutoff),
			zap.Int64("students", res.Students),
			zap.Int64("members", res.Members),
			zap.Int64("volunteers", res.Volunteers))
	}
	return res
}
