package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yukikurage/apqp-tracker/internal/database"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// now stamps identifiers and timestamps. Tests replace it.
var now = func() time.Time {
	return time.Now().UTC()
}

// sortColumns maps the sortable fields of an entity to SQL columns.
type sortColumns map[string]string

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// translate maps driver errors onto the error taxonomy. constraint names
// the unique constraint a duplicate key would breach.
func translate(err error, entity, constraint string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return apperrors.ConstraintViolation(entity, constraint, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(err):
		return apperrors.MissingReference(entity, err)
	}
	return err
}

// first loads a single row by id into dest.
func first(db *gorm.DB, dest interface{}, entity string, id uuid.UUID) error {
	err := db.Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return err
}

// insert stamps base and creates value without touching associations.
func insert(db *gorm.DB, value interface{}, base *models.Base, entity, constraint string) error {
	base.Init(now())
	return translate(db.Omit(clause.Associations).Create(value).Error, entity, constraint)
}

// update writes every column of value except its identity and creation
// time, and refreshes the modification time.
func update(db *gorm.DB, value interface{}, base *models.Base, entity, constraint string) error {
	base.Touch(now())

	res := db.Model(value).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(value)
	if res.Error != nil {
		return translate(res.Error, entity, constraint)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(entity, base.ID)
	}
	return nil
}

// list counts the rows matched by query, then fetches one page of them
// in the requested or default order with the given associations preloaded.
func list(query *gorm.DB, dest interface{}, opts ListOptions, columns sortColumns, defaultOrder string, preload ...string) (int64, error) {
	order, err := orderClause(opts.Sort, columns, defaultOrder)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	for _, p := range preload {
		query = query.Preload(p)
	}

	err = query.
		Order(order).
		Scopes(database.Paginate(opts.Page, opts.PageSize)).
		Find(dest).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func orderClause(sort []SortField, columns sortColumns, defaultOrder string) (string, error) {
	if len(sort) == 0 {
		return defaultOrder, nil
	}

	parts := make([]string, 0, len(sort))
	for _, s := range sort {
		column, ok := columns[s.Field]
		if !ok {
			return "", apperrors.Validation("unknown sort field", map[string]string{s.Field: "sortable"})
		}
		if s.Desc {
			column += " DESC"
		}
		parts = append(parts, column)
	}
	return strings.Join(parts, ", "), nil
}

// deleteByID removes one row and reports NotFound when nothing matched.
func deleteByID(tx *gorm.DB, model interface{}, entity string, id uuid.UUID) error {
	res := tx.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return translate(res.Error, entity, "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(entity, id)
	}
	return nil
}
