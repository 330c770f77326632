package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const (
	occupancyPrefix = "occupancy"
	versionPrefix   = "occupancy-ver"

	// versionTTL only has to outlive the slowest database read between
	// Version and Set.
	versionTTL = time.Hour
)

// setIfVersionScript writes the entry only while the version key still holds
// the value the caller read before loading from the database.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// invalidateScript drops each entry and bumps its version in one step.
// KEYS holds the n entry keys followed by their n version keys.
var invalidateScript = redis.NewScript(`
local n = #KEYS / 2
for i = 1, n do
  redis.call('DEL', KEYS[i])
  redis.call('INCR', KEYS[n + i])
  redis.call('EXPIRE', KEYS[n + i], ARGV[1])
end
return n
`)

type OccupancyCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewOccupancyCache returns the Redis-backed cache, or a no-op one when rdb is nil.
func NewOccupancyCache(rdb *redis.Client, ttl time.Duration) shared.OccupancyCache {
	if rdb == nil {
		return NoopOccupancyCache{}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &OccupancyCache{rdb: rdb, ttl: ttl}
}

func OccupancyKey(key shared.SlotKey) string {
	return occupancyPrefix + ":" + key.EquipmentID.String() + ":" + key.Date.String()
}

func versionKey(key shared.SlotKey) string {
	return versionPrefix + ":" + key.EquipmentID.String() + ":" + key.Date.String()
}

func (c *OccupancyCache) Get(ctx context.Context, key shared.SlotKey) (reservation.ModuleSet, bool, error) {
	raw, err := c.rdb.Get(ctx, OccupancyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to read occupancy cache")
	}

	modules, err := decodeModules(raw)
	if err != nil {
		slog.Warn("discarding malformed occupancy entry", "key", OccupancyKey(key), "error", err.Error())
		return nil, false, nil
	}
	return modules, true, nil
}

func (c *OccupancyCache) Version(ctx context.Context, key shared.SlotKey) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "failed to read occupancy version")
	}
	return v, nil
}

func (c *OccupancyCache) Set(ctx context.Context, key shared.SlotKey, version int64, modules reservation.ModuleSet) error {
	raw, err := json.Marshal(modules.Ints())
	if err != nil {
		return errs.Wrap(err, "failed to encode occupancy")
	}
	err = setIfVersionScript.Run(ctx, c.rdb,
		[]string{OccupancyKey(key), versionKey(key)},
		strconv.FormatInt(version, 10), string(raw), c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return errs.Wrap(err, "failed to write occupancy cache")
	}
	return nil
}

func (c *OccupancyCache) Invalidate(ctx context.Context, keys ...shared.SlotKey) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, 2*len(keys))
	for i, k := range keys {
		names[i] = OccupancyKey(k)
		names[len(keys)+i] = versionKey(k)
	}
	if err := invalidateScript.Run(ctx, c.rdb, names, int64(versionTTL.Seconds())).Err(); err != nil {
		return errs.Wrap(err, "failed to invalidate occupancy cache")
	}
	return nil
}

func decodeModules(raw []byte) (reservation.ModuleSet, error) {
	var numbers []int
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, err
	}
	modules, invalid := reservation.ParseModules(numbers)
	if len(invalid) > 0 {
		return nil, errs.Newf("modules out of range: %v", invalid)
	}
	return modules, nil
}

// NoopOccupancyCache always misses.
type NoopOccupancyCache struct{}

func (NoopOccupancyCache) Get(context.Context, shared.SlotKey) (reservation.ModuleSet, bool, error) {
	return nil, false, nil
}

func (NoopOccupancyCache) Version(context.Context, shared.SlotKey) (int64, error) {
	return 0, nil
}

func (NoopOccupancyCache) Set(context.Context, shared.SlotKey, int64, reservation.ModuleSet) error {
	return nil
}

func (NoopOccupancyCache) Invalidate(context.Context, ...shared.SlotKey) error {
	return nil
}
