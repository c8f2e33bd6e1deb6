package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sajeme/SRI/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Key del contador de versión del dataset (ver DatasetVersion).
const datasetVersionKey = "dataset:version"

func InitRedis(cfg *config.Config) {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("[cache] error conectando a Redis: %v", err)
	}

	log.Println("[cache] Redis OK.")
}

// =======================================================
//  Helpers JSON para usar desde los servicios
// =======================================================

// GetJSON lee una key de Redis, si existe deserializa el JSON en `dest`.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		// no existe la clave
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa `value` a JSON y lo guarda en Redis con TTL en segundos.
func SetJSON(ctx context.Context, key string, value any, ttlSeconds int) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	return client.Set(ctx, key, b, ttl).Err()
}

// =======================================================
//  Versión del dataset (invalidación de respuestas)
// =======================================================
//
// Los modelos se recalculan siempre por petición; lo único que se cachea
// son respuestas ya calculadas. Cada respuesta se guarda con la versión
// del dataset en la key, y cada escritura (usuario, juego o interacción)
// incrementa el contador, así ninguna entrada puede sobrevivir al dataset
// con el que fue calculada.

// DatasetVersion devuelve la versión actual (0 si no existe o sin Redis).
func DatasetVersion(ctx context.Context) int64 {
	if client == nil {
		return 0
	}
	v, err := client.Get(ctx, datasetVersionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// BumpDatasetVersion incrementa la versión tras una escritura.
func BumpDatasetVersion(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Incr(ctx, datasetVersionKey).Err(); err != nil {
		log.Printf("[cache] error incrementando %s: %v", datasetVersionKey, err)
	}
}
