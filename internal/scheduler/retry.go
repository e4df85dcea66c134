package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/pkg/log"
)

var ErrJobAlreadyRunning = errors.New("job já está em execução")

// RetryPolicy define a espera antes de cada nova tentativa de uma campanha que falhou no ciclo.
// Esgotadas as tentativas, a campanha fica para o próximo ciclo regular.
type RetryPolicy struct {
	Delays []time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Delays: []time.Duration{time.Minute, 5 * time.Minute, 30 * time.Minute}}
}

func NewRetryPolicy(delays []time.Duration) RetryPolicy {
	valid := make([]time.Duration, 0, len(delays))
	for _, d := range delays {
		if d > 0 {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return DefaultRetryPolicy()
	}
	return RetryPolicy{Delays: valid}
}

// NextDelay devolve a espera antes da tentativa informada, contada a partir de 1
func (p RetryPolicy) NextDelay(attempt int) (time.Duration, bool) {
	if attempt < 1 || attempt > len(p.Delays) {
		return 0, false
	}
	return p.Delays[attempt-1], true
}

func (p RetryPolicy) MaxAttempts() int {
	return len(p.Delays)
}

var errSchedulerStopped = errors.New("agendador parado, novas tentativas indisponíveis")

// scheduleFunc agenda task para rodar uma única vez depois de delay
type scheduleFunc func(delay time.Duration, task func()) error

// oneOffJob agenda a tarefa como um job avulso do gocron, removido do agendador depois da execução
func oneOffJob(scheduler *gocron.Scheduler) scheduleFunc {
	return func(delay time.Duration, task func()) error {
		if !scheduler.IsRunning() {
			return errSchedulerStopped
		}
		_, err := scheduler.Every(delay).WaitForSchedule().LimitRunsTo(1).Do(task)
		return err
	}
}

// retryQueue repete por campanha o que falhou num ciclo, com cada tentativa agendada como job próprio.
// O ciclo que originou a falha termina sem esperar, e cada campanha tem no máximo uma tentativa pendente.
type retryQueue struct {
	job      string
	policy   RetryPolicy
	schedule scheduleFunc
	run      func(ctx context.Context, id string) error

	scheduleMu sync.Mutex
	mu         sync.Mutex
	pending    map[string]int
	recovered  int
	gaveUp     int
}

func newRetryQueue(job string, policy RetryPolicy, schedule scheduleFunc, run func(ctx context.Context, id string) error) *retryQueue {
	return &retryQueue{
		job:      job,
		policy:   policy,
		schedule: schedule,
		run:      run,
		pending:  make(map[string]int),
	}
}

// Enqueue agenda a primeira nova tentativa de cada id e devolve os que ficaram agendados
func (q *retryQueue) Enqueue(ctx context.Context, ids []string) []string {
	scheduled := make([]string, 0, len(ids))
	for _, id := range ids {
		q.mu.Lock()
		_, busy := q.pending[id]
		q.mu.Unlock()
		if busy {
			continue
		}
		if q.scheduleAttempt(ctx, id, 1) {
			scheduled = append(scheduled, id)
		}
	}
	return scheduled
}

func (q *retryQueue) scheduleAttempt(ctx context.Context, id string, attempt int) bool {
	logger := log.Entry(ctx).WithFields(logrus.Fields{
		"job":         q.job,
		"campaign_id": id,
		"attempt":     attempt,
	})

	delay, ok := q.policy.NextDelay(attempt)
	if !ok {
		q.mu.Lock()
		delete(q.pending, id)
		q.gaveUp++
		q.mu.Unlock()
		logger.Warn("Tentativas esgotadas, campanha fica para o próximo ciclo")
		return false
	}

	q.mu.Lock()
	q.pending[id] = attempt
	q.mu.Unlock()

	q.scheduleMu.Lock()
	err := q.schedule(delay, func() { q.attempt(ctx, id, attempt) })
	q.scheduleMu.Unlock()
	if err != nil {
		q.mu.Lock()
		delete(q.pending, id)
		q.mu.Unlock()
		logger.WithField("error", err).Warn("Nova tentativa não agendada")
		return false
	}

	logger.WithField("delay", delay.String()).Info("Nova tentativa agendada")
	return true
}

func (q *retryQueue) attempt(ctx context.Context, id string, attempt int) {
	if ctx.Err() != nil {
		q.mu.Lock()
		delete(q.pending, id)
		q.mu.Unlock()
		return
	}

	if err := q.run(ctx, id); err != nil {
		log.Entry(ctx).WithFields(logrus.Fields{
			"job":         q.job,
			"campaign_id": id,
			"attempt":     attempt,
			"error":       err,
		}).Warn("Nova tentativa falhou")
		q.scheduleAttempt(ctx, id, attempt+1)
		return
	}

	q.mu.Lock()
	delete(q.pending, id)
	q.recovered++
	q.mu.Unlock()
}

func (q *retryQueue) status() map[string]any {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := make([]string, 0, len(q.pending))
	for id := range q.pending {
		pending = append(pending, id)
	}
	sort.Strings(pending)

	return map[string]any{
		"retry_delays":    q.policy.Delays,
		"retry_pending":   pending,
		"retry_recovered": q.recovered,
		"retry_gave_up":   q.gaveUp,
	}
}

// cycleState controla a execução exclusiva de um ciclo e guarda os horários da última execução
type cycleState struct {
	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
}

func (s *cycleState) begin(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.lastStartedAt = now
	return true
}

func (s *cycleState) end(now time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.lastCompletedAt = now
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

func (s *cycleState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *cycleState) status() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"running":                s.running,
		"last_sync_started_at":   s.lastStartedAt,
		"last_sync_completed_at": s.lastCompletedAt,
		"last_error":             s.lastError,
	}
}

func mergeStatus(base map[string]any, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
