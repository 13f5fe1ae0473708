package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/guttosm/orderpulse/internal/storage"
)

const (
	RestaurantsFile = "restaurants.json"
	OrdersFile      = "orders.json"

	defaultBatchSize = 5000
	maxParallel      = 8
	// orders are spread over the last three months up to the end of today
	spreadMonths = 3
)

// Repository is the subset of storage the seeder writes through.
type Repository interface {
	InsertRestaurantsBatch(ctx context.Context, restaurants []models.Restaurant) error
	InsertOrdersBatch(ctx context.Context, orders []models.Order) error
}

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) Repository {
	return storage.NewRepository(db)
}

// Result reports how many rows were loaded.
type Result struct {
	Restaurants int
	Orders      int
}

// Options tunes a Seeder. Zero values pick defaults.
type Options struct {
	Parallel  int             // concurrent order batches; 0 = min(NumCPU, 8)
	BatchSize int             // orders per COPY batch; 0 = 5000
	Clock     clockwork.Clock // source of "now" for order times
	Rand      *rand.Rand      // source of the random order times
}

// Seeder loads the mock restaurants and orders into storage.
type Seeder struct {
	repo      Repository
	parallel  int
	batchSize int
	clock     clockwork.Clock
	rng       *rand.Rand
}

// New builds a Seeder writing through repo.
func New(repo Repository, opts Options) *Seeder {
	s := &Seeder{repo: repo, parallel: opts.Parallel, batchSize: opts.BatchSize, clock: opts.Clock, rng: opts.Rand}
	if s.parallel <= 0 {
		s.parallel = min(runtime.NumCPU(), maxParallel)
	}
	if s.parallel > maxParallel {
		s.parallel = maxParallel
	}
	if s.batchSize <= 0 {
		s.batchSize = defaultBatchSize
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// ProcessDirectory seeds dir into the database behind db.
//
// Parameters:
//   - dir: directory containing restaurants.json and orders.json.
//   - db: open *sql.DB (PostgreSQL) with the schema migrated.
//   - parallel: concurrent order batches (0 = auto).
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int) (Result, error) {
	return New(repoCtor(db), Options{Parallel: parallel}).Run(ctx, dir)
}

// Run loads restaurants first, then orders.
//
// Behavior:
//   - A missing file is skipped with an info log.
//   - A malformed file or an invalid record fails the run.
//   - Every order gets a random order_time within the last three months.
//   - Orders are inserted in batches, several batches at once; the first failing
//     batch cancels the rest.
func (s *Seeder) Run(ctx context.Context, dir string) (Result, error) {
	lg := logger.WithComponent("seed")
	var res Result

	start := time.Now()
	n, err := s.seedRestaurants(ctx, filepath.Join(dir, RestaurantsFile))
	if err != nil {
		return res, fmt.Errorf("%s: %w", RestaurantsFile, err)
	}
	res.Restaurants = n
	lg.Info().Int("rows", n).Dur("elapsed", time.Since(start)).Msg("restaurants seeded")

	start = time.Now()
	n, err = s.seedOrders(ctx, filepath.Join(dir, OrdersFile))
	if err != nil {
		return res, fmt.Errorf("%s: %w", OrdersFile, err)
	}
	res.Orders = n
	lg.Info().Int("rows", n).Int("parallel", s.parallel).Dur("elapsed", time.Since(start)).Msg("orders seeded")

	return res, nil
}

func (s *Seeder) seedRestaurants(ctx context.Context, path string) (int, error) {
	f, ok, err := openOptional(path)
	if !ok || err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	var restaurants []models.Restaurant
	if _, err := decodeArray(f, func(i int, rec restaurantRecord) error {
		r, err := toRestaurant(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		restaurants = append(restaurants, r)
		return nil
	}); err != nil {
		return 0, err
	}
	if len(restaurants) == 0 {
		return 0, nil
	}

	now := s.clock.Now().UTC()
	for i := range restaurants {
		restaurants[i].CreatedAt = now
	}
	if err := s.repo.InsertRestaurantsBatch(ctx, restaurants); err != nil {
		return 0, fmt.Errorf("insert restaurants: %w", err)
	}
	return len(restaurants), nil
}

func (s *Seeder) seedOrders(ctx context.Context, path string) (int, error) {
	f, ok, err := openOptional(path)
	if !ok || err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	lg := logger.WithComponent("seed")
	now := s.clock.Now().UTC()

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, s.parallel)
	var inserted atomic.Int64
	batchNo := 0

	buf := make([]models.Order, 0, s.batchSize)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		batch, idx := buf, batchNo
		buf = make([]models.Order, 0, s.batchSize)
		batchNo++

		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return gctx.Err()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			if err := s.repo.InsertOrdersBatch(gctx, batch); err != nil {
				lg.Error().Int("batch", idx).Err(err).Msg("batch failed")
				return fmt.Errorf("insert batch %d: %w", idx, err)
			}
			total := inserted.Add(int64(len(batch)))
			lg.Debug().Int("batch", idx).Int("rows", len(batch)).Int64("total", total).Msg("batch done")
			return nil
		})
		return nil
	}

	_, parseErr := decodeArray(f, func(i int, rec orderRecord) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		o, err := toOrder(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		o.OrderTime = s.randomOrderTime(now)
		buf = append(buf, o)
		if len(buf) >= s.batchSize {
			return flush()
		}
		return nil
	})
	if parseErr == nil {
		parseErr = flush()
	}

	if err := g.Wait(); err != nil {
		return int(inserted.Load()), err
	}
	if parseErr != nil {
		return int(inserted.Load()), parseErr
	}
	return int(inserted.Load()), nil
}

// randomOrderTime picks a second between the start of the day three months
// before now and the end of today.
func (s *Seeder) randomOrderTime(now time.Time) time.Time {
	first := now.AddDate(0, -spreadMonths, 0)
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(start).Hours() / 24)

	return start.
		AddDate(0, 0, s.rng.IntN(days+1)).
		Add(time.Duration(s.rng.IntN(24)) * time.Hour).
		Add(time.Duration(s.rng.IntN(60)) * time.Minute).
		Add(time.Duration(s.rng.IntN(60)) * time.Second)
}

// openOptional opens path; a missing file reports ok=false without error.
func openOptional(path string) (*os.File, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		lg := logger.WithComponent("seed")
		lg.Info().Str("file", path).Msg("mock file not found, skipping")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open: %w", err)
	}
	return f, true, nil
}
