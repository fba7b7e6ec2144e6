package overlay

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const keyPrefix = "overlay:"

// Redis keeps one hash per field, keyed by lead id, with JSON encoded values
// so that an explicit null survives the round trip.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, eris.Wrap(err, "overlay: parse redis url")
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "overlay: connect redis")
	}
	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

func (r *Redis) Set(ctx context.Context, field Field, leadID int64, value *string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrap(err, "overlay: encode value")
	}
	if err := r.Client.HSet(ctx, hashKey(field), strconv.FormatInt(leadID, 10), raw).Err(); err != nil {
		return eris.Wrapf(err, "overlay: set %s for lead %d", field, leadID)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, field Field, leadID int64) error {
	if err := r.Client.HDel(ctx, hashKey(field), strconv.FormatInt(leadID, 10)).Err(); err != nil {
		return eris.Wrapf(err, "overlay: clear %s for lead %d", field, leadID)
	}
	return nil
}

func (r *Redis) Snapshot(ctx context.Context, field Field) (map[int64]*string, error) {
	all, err := r.Client.HGetAll(ctx, hashKey(field)).Result()
	if err != nil {
		return nil, eris.Wrapf(err, "overlay: snapshot %s", field)
	}
	out := make(map[int64]*string, len(all))
	for k, raw := range all {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		var v *string
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			continue
		}
		out[id] = v
	}
	return out, nil
}

func (r *Redis) Pending(ctx context.Context) (map[Field]int, error) {
	out := make(map[Field]int, len(Fields))
	for _, f := range Fields {
		n, err := r.Client.HLen(ctx, hashKey(f)).Result()
		if err != nil {
			return nil, eris.Wrapf(err, "overlay: count %s", f)
		}
		out[f] = int(n)
	}
	return out, nil
}

func hashKey(field Field) string {
	return keyPrefix + string(field)
}
