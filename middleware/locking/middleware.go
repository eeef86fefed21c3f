package locking

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"locking-gateway/middleware/locking/application"
	"locking-gateway/middleware/locking/domain"
)

type Options struct {
	// Max é o teto de requisições simultâneas. Com Max <= 0 (e sem Lock)
	// o middleware vira pass-through.
	Max int

	// DefaultTimeout é quanto cada requisição espera por vaga.
	// Zero nega na hora quando o gate está cheio.
	DefaultTimeout time.Duration

	// Lock permite injetar um Lock existente (ex: gate compartilhado entre
	// grupos de rotas). Quando presente, Max e DefaultTimeout são ignorados.
	Lock *application.Lock

	RejectStatus int
	// RetryAfter é o valor do header Retry-After ao rejeitar. Se 0, usa 1s.
	RetryAfter time.Duration

	Stats domain.StatsStore
	// Name identifica o lock nas estatísticas/headers. Vazio gera um nome
	// estável por instância do middleware.
	Name string

	AddHeaders bool
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	lock := opts.Lock
	if lock == nil {
		if opts.Max <= 0 {
			return func(next http.Handler) http.Handler { return next }
		}
		lock = New(opts.DefaultTimeout, opts.Max)
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.Name == "" {
		opts.Name = "gate-" + uuid.NewString()[:8]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.AddHeaders {
				w.Header().Set("X-Concurrency-Name", opts.Name)
				if opts.Max > 0 {
					w.Header().Set("X-Concurrency-Limit", formatInt(opts.Max))
				}
			}

			start := time.Now()
			sc := lock.TryAcquire()
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.AcquireEvent{
					Lock:    opts.Name,
					Granted: sc.Acquired(),
					Waited:  time.Since(start),
					At:      time.Now(),
				})
			}
			if !sc.Acquired() {
				w.Header().Set("Retry-After", formatInt(int(opts.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer sc.Close()

			next.ServeHTTP(w, r)
		})
	}
}
