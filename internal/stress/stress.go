// Package stress drives an atomcell.Int from many goroutines at once and
// checks the result against a sequential reference.
package stress

import (
	"context"
	"math"
	"math/bits"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/atomcell"
)

var (
	ErrInvalidConfig = errors.New("invalid stress config")
	ErrMismatch      = errors.New("final value mismatch")
	ErrNonMonotonic  = errors.New("observed value went backwards")
)

// Mode selects which operation workers apply.
type Mode int

const (
	ModeAdd Mode = iota
	ModeSub
	// ModeMixed makes even workers add and odd workers subtract.
	ModeMixed
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeSub:
		return "sub"
	case ModeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "add":
		return ModeAdd, nil
	case "sub":
		return ModeSub, nil
	case "mixed":
		return ModeMixed, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown mode %q", s)
}

type Config struct {
	// Workers is the number of concurrent goroutines; 0 means one per CPU.
	Workers      int
	OpsPerWorker int
	Base         int32
	Delta        int32
	Mode         Mode
	// Delay is slept by every worker before its first operation so that
	// all of them overlap.
	Delay time.Duration
}

// DefaultConfig is the classic acceptance scenario: start at 50, every
// worker adds 100 once.
func DefaultConfig() Config {
	return Config{
		OpsPerWorker: 1,
		Base:         50,
		Delta:        100,
		Mode:         ModeAdd,
	}
}

type Report struct {
	Workers   int
	Ops       int
	Expected  int32
	Got       int32
	Reference int32
	Loads     int64
	Elapsed   time.Duration
	// LoadMode is atomcell.LoadMode of the build that produced the report.
	LoadMode string
}

func (c Config) validate() (Config, error) {
	if c.Workers < 0 {
		return c, errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OpsPerWorker <= 0 {
		return c, errors.Wrapf(ErrInvalidConfig, "ops per worker must be positive, got %d", c.OpsPerWorker)
	}
	if c.Mode < ModeAdd || c.Mode > ModeMixed {
		return c, errors.Wrapf(ErrInvalidConfig, "unknown mode %d", c.Mode)
	}
	if c.Delay < 0 {
		return c, errors.Wrapf(ErrInvalidConfig, "delay must not be negative, got %s", c.Delay)
	}
	if !c.spanFits() {
		return c, errors.Wrapf(ErrInvalidConfig, "|delta| * ops * workers overflows int64 (%d * %d * %d)",
			c.Delta, c.OpsPerWorker, c.Workers)
	}
	return c, nil
}

// spanFits reports whether |Delta|*OpsPerWorker*Workers, plus any int32
// Base, stays inside int64, so expected can sum without wrapping.
func (c Config) spanFits() bool {
	delta := int64(c.Delta)
	if delta < 0 {
		delta = -delta
	}
	hi, lo := bits.Mul64(uint64(delta), uint64(c.OpsPerWorker))
	if hi != 0 {
		return false
	}
	hi, lo = bits.Mul64(lo, uint64(c.Workers))
	return hi == 0 && lo <= math.MaxInt64-(-math.MinInt32)
}

func (c Config) adds(worker int) bool {
	switch c.Mode {
	case ModeAdd:
		return true
	case ModeSub:
		return false
	default:
		return worker&1 == 0
	}
}

// expected is the value a sequential execution would end with, computed
// in int64 and truncated the way int32 arithmetic wraps.
func (c Config) expected() (int32, bool) {
	sum := int64(c.Base)
	for w := range c.Workers {
		d := int64(c.Delta) * int64(c.OpsPerWorker)
		if c.adds(w) {
			sum += d
		} else {
			sum -= d
		}
	}
	return int32(sum), sum >= math.MinInt32 && sum <= math.MaxInt32
}

// monotonic reports whether every intermediate value must be at least
// the previous one.
func (c Config) monotonic() bool {
	_, fits := c.expected()
	return c.Mode == ModeAdd && c.Delta >= 0 && fits
}

// Run executes cfg and verifies the outcome. A cancelled ctx stops
// workers before their next operation.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) (Report, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return Report{}, err
	}

	logger = logger.With().
		Int("workers", cfg.Workers).
		Int("ops", cfg.OpsPerWorker).
		Stringer("mode", cfg.Mode).
		Str("load_mode", atomcell.LoadMode()).
		Logger()

	cell := atomcell.New(cfg.Base)
	var ref atomic.Int32
	ref.Store(cfg.Base)

	stop := make(chan struct{})
	observed := make(chan observation, 1)
	go observe(cell, cfg.monotonic(), stop, observed)

	logger.Debug().Int32("base", cfg.Base).Int32("delta", cfg.Delta).Msg("starting workers")
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		add := cfg.adds(w)
		g.Go(func() error {
			if cfg.Delay > 0 {
				select {
				case <-time.After(cfg.Delay):
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			for range cfg.OpsPerWorker {
				if err := gctx.Err(); err != nil {
					return err
				}
				if add {
					cell.Add(cfg.Delta)
					ref.Add(cfg.Delta)
				} else {
					cell.Sub(cfg.Delta)
					ref.Add(-cfg.Delta)
				}
			}
			return nil
		})
	}
	werr := g.Wait()
	close(stop)
	obs := <-observed

	want, _ := cfg.expected()
	report := Report{
		Workers:   cfg.Workers,
		Ops:       cfg.Workers * cfg.OpsPerWorker,
		Expected:  want,
		Got:       cell.Load(),
		Reference: ref.Load(),
		Loads:     obs.loads,
		Elapsed:   time.Since(started),
		LoadMode:  atomcell.LoadMode(),
	}

	if werr != nil {
		return report, errors.Wrap(werr, "stress run interrupted")
	}
	if obs.backwards > 0 {
		return report, errors.Wrapf(ErrNonMonotonic, "%d regressions in %d loads", obs.backwards, obs.loads)
	}
	if report.Got != report.Expected || report.Reference != report.Expected {
		return report, errors.Wrapf(ErrMismatch, "got %d, reference %d, expected %d",
			report.Got, report.Reference, report.Expected)
	}

	logger.Info().
		Int32("value", report.Got).
		Int64("loads", report.Loads).
		Dur("elapsed", report.Elapsed).
		Msg("stress run passed")
	return report, nil
}

type observation struct {
	loads     int64
	backwards int64
}

func observe(cell *atomcell.Int, monotonic bool, stop <-chan struct{}, out chan<- observation) {
	var obs observation
	last := cell.Load()
	for {
		select {
		case <-stop:
			out <- obs
			return
		default:
		}
		v := cell.Load()
		obs.loads++
		if monotonic && v < last {
			obs.backwards++
		}
		last = v
		runtime.Gosched()
	}
}
