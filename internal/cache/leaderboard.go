// Package cache fournit un cache de lecture optionnel (redis) pour le
// classement cumulé. Le classement reste recalculable à la demande : le
// cache est invalidé à chaque recalcul de semaine et le moteur fonctionne
// sans redis quand REDIS_ADDR n'est pas configuré.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/landrzz/StepUpLeaderboard/internal/logger"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	overallKeyFormat = "leaderboard:overall:%s"
	overallTTL       = 5 * time.Minute
)

var client *redis.Client

// Init connecte le client redis. Sans adresse, le cache reste désactivé.
func Init(addr string) {
	if addr == "" {
		logger.Info("Redis cache disabled (no REDIS_ADDR)")
		return
	}

	client = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warning("Redis unreachable, cache disabled: %v", err)
		client = nil
		return
	}
	logger.Success("Connected to Redis")
}

// Enabled indique si le cache est actif.
func Enabled() bool {
	return client != nil
}

// GetOverall lit le classement cumulé d'un groupe depuis le cache.
func GetOverall(ctx context.Context, groupID string) ([]model.OverallEntry, bool) {
	if client == nil {
		return nil, false
	}

	raw, err := client.Get(ctx, fmt.Sprintf(overallKeyFormat, groupID)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []model.OverallEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetOverall met le classement cumulé en cache pour quelques minutes.
func SetOverall(ctx context.Context, groupID string, entries []model.OverallEntry) {
	if client == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := client.Set(ctx, fmt.Sprintf(overallKeyFormat, groupID), raw, overallTTL).Err(); err != nil {
		logger.Warning("could not cache overall leaderboard for group %s: %v", groupID, err)
	}
}

// InvalidateOverall purge le classement cumulé d'un groupe. Appelé après
// chaque recalcul de semaine : les lecteurs ne doivent jamais voir un cache
// plus vieux que la dernière écriture.
func InvalidateOverall(ctx context.Context, groupID string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, fmt.Sprintf(overallKeyFormat, groupID)).Err(); err != nil {
		logger.Warning("could not invalidate overall leaderboard for group %s: %v", groupID, err)
	}
}
