// Package tagstore is a SQLite-backed options provider. Tags are matched by
// label and ranked by how often they have been committed.
package tagstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultLimit bounds a single Provide call.
const DefaultLimit = 50

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	limit  int
	now    func() time.Time
}

type Tag struct {
	ID        string    `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Label      string `gorm:"uniqueIndex"`
	InsertText string
	Detail     string
	Uses       int `gorm:"index"`
	LastUsedAt sql.NullTime
}

// Open opens (creating if needed) the tag database at dbFilePath.
func Open(dbFilePath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// - busy_timeout(5000): 5 second timeout when another process holds the lock
	// - synchronous(1): NORMAL mode for durability/performance balance
	// - temp_store(2): MEMORY
	connectionString := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=synchronous(1)&_pragma=temp_store(2)", dbFilePath)

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening tag database: %w", err)
	}

	if err := db.AutoMigrate(&Tag{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite serializes writes anyway, so multiple connections add overhead
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{
		db:     db,
		logger: logger,
		limit:  DefaultLimit,
		now:    time.Now,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed inserts options whose label is not stored yet. Existing tags keep
// their usage counts.
func (s *Store) Seed(ctx context.Context, options []trigger.Option) error {
	if len(options) == 0 {
		return nil
	}

	tags := lo.Map(options, func(o trigger.Option, _ int) Tag {
		return newTag(o)
	})

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tags)
	if result.Error != nil {
		return result.Error
	}

	s.logger.Debug("seeded tags", zap.Int("offered", len(tags)), zap.Int64("inserted", result.RowsAffected))
	return nil
}

// Provide returns tags whose label contains query, most used first. It
// satisfies trigger.Provider.
func (s *Store) Provide(ctx context.Context, query string) ([]trigger.Option, error) {
	var tags []Tag

	db := s.db.WithContext(ctx)
	if query != "" {
		db = db.Where(`label LIKE ? ESCAPE '\'`, "%"+escapeLike(query)+"%")
	}
	result := db.
		Order("uses desc").
		Order("length(label)").
		Order("label").
		Limit(s.limit).
		Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}

	now := s.now()
	return lo.Map(tags, func(t Tag, _ int) trigger.Option {
		return t.option(now)
	}), nil
}

// Record counts a commit of opt. Options not stored yet are added.
func (s *Store) Record(ctx context.Context, opt trigger.Option) error {
	now := s.now()
	db := s.db.WithContext(ctx)

	result := db.Model(&Tag{}).
		Where("id = ? OR label = ?", opt.ID, opt.Label).
		Updates(map[string]any{
			"uses":         gorm.Expr("uses + 1"),
			"last_used_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	tag := newTag(opt)
	tag.Uses = 1
	tag.LastUsedAt = sql.NullTime{Time: now, Valid: true}
	return db.Create(&tag).Error
}

// Tags returns every stored tag, most used first.
func (s *Store) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	result := s.db.WithContext(ctx).Order("uses desc").Order("label").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// Delete removes the tag with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no tag found with id %q: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// IsNotFound reports whether err means the tag did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func newTag(o trigger.Option) Tag {
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}
	return Tag{
		ID:         id,
		Label:      o.Label,
		InsertText: o.InsertText,
		Detail:     o.Detail,
	}
}

func (t Tag) option(now time.Time) trigger.Option {
	detail := t.Detail
	if t.Uses > 0 {
		usage := "used " + times(t.Uses)
		if t.LastUsedAt.Valid {
			usage += ", " + humanize.RelTime(t.LastUsedAt.Time, now, "ago", "from now")
		}
		if detail != "" {
			detail += " · " + usage
		} else {
			detail = usage
		}
	}

	return trigger.Option{
		ID:         t.ID,
		Label:      t.Label,
		InsertText: t.InsertText,
		Detail:     detail,
	}
}

func times(n int) string {
	if n == 1 {
		return "once"
	}
	return humanize.Comma(int64(n)) + " times"
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
