// Package redisstore содержит реализацию хранилища заметок на Redis.
//
// Порядок заметок хранится в списке <prefix>:notes, каждая заметка лежит
// JSON-строкой под ключом <prefix>:note:<id>.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notesboard/internal/devserver/config"
	"notesboard/internal/devserver/domain/entities"
	"notesboard/internal/devserver/ports/repositories"
	dbredis "notesboard/pkg/db/redis"
	"notesboard/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodList   = "list"
	LogMethodCreate = "create"
	LogMethodGet    = "get"
	LogMethodUpdate = "update"
	LogMethodDelete = "delete"

	ErrorFailedToConnect = "failed to open note repository"
	ErrorFailedToList    = "failed to list notes in redis"
	ErrorFailedToCreate  = "failed to create note in redis"
	ErrorFailedToGet     = "failed to get note from redis"
	ErrorFailedToUpdate  = "failed to update note in redis"
	ErrorFailedToDelete  = "failed to delete note from redis"
	ErrorFailedToDecode  = "failed to decode note"
	ErrorFailedToClose   = "failed to close redis connection"
)

// NoteRepository реализует repositories.NoteRepository с использованием Redis.
type NoteRepository struct {
	client *redis.Client
	prefix string
}

// NewNoteRepository подключается к Redis и проверяет соединение.
func NewNoteRepository(ctx context.Context, cfg *config.RedisConfig) (*NoteRepository, error) {
	client, err := dbredis.Connect(ctx, dbredis.Config{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return NewNoteRepositoryWithClient(client, cfg.KeyPrefix), nil
}

// NewNoteRepositoryWithClient оборачивает уже созданный клиент.
func NewNoteRepositoryWithClient(client *redis.Client, prefix string) *NoteRepository {
	return &NoteRepository{client: client, prefix: prefix}
}

func (r *NoteRepository) listKey() string {
	return r.prefix + ":notes"
}

func (r *NoteRepository) noteKey(id string) string {
	return r.prefix + ":note:" + id
}

// List возвращает страницу заметок в порядке создания.
func (r *NoteRepository) List(ctx context.Context, page, limit int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodList))

	if limit <= 0 {
		return []*entities.Note{}, nil
	}

	start := int64(repositories.Offset(page, limit))
	ids, err := r.client.LRange(ctx, r.listKey(), start, start+int64(limit)-1).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToList, err)
	}
	if len(ids) == 0 {
		return []*entities.Note{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.noteKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToList, err)
	}

	notes := make([]*entities.Note, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// id в списке без тела: заметку удалили между LRANGE и MGET.
			log.Warn(ctx, "dangling note id", zap.String("id", ids[i]))
			continue
		}
		note, err := decode(raw)
		if err != nil {
			log.Error(ctx, ErrorFailedToDecode, zap.String("id", ids[i]), zap.Error(err))
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// Create сохраняет заметку и добавляет ее ID в конец списка.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreate), zap.String("id", note.ID))

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToCreate, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.noteKey(note.ID), data, 0)
		pipe.RPush(ctx, r.listKey(), note.ID)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToCreate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToCreate, err)
	}

	return nil
}

// Get возвращает заметку по ID.
func (r *NoteRepository) Get(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("id", id))

	raw, err := r.client.Get(ctx, r.noteKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return decode(raw)
}

// Update перезаписывает существующую заметку.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodUpdate), zap.String("id", note.ID))

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToUpdate, err)
	}

	updated, err := r.client.SetXX(ctx, r.noteKey(note.ID), data, 0).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToUpdate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToUpdate, err)
	}
	if !updated {
		return repositories.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку и ее ID из списка.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("id", id))

	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.noteKey(id))
		pipe.LRem(ctx, r.listKey(), 0, id)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	if deleted.Val() == 0 {
		return repositories.ErrNoteNotFound
	}

	return nil
}

// Close закрывает соединение с Redis.
func (r *NoteRepository) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

func decode(raw string) (*entities.Note, error) {
	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return &note, nil
}
