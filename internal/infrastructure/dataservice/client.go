package dataservice

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
)

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Client is the session-bound data service client. Row-level rules are
// evaluated against the session carried by the request context.
type Client struct {
	db       *gorm.DB
	elevated bool
}

var _ repositories.DataService = (*Client)(nil)

// NewClient creates the normal, row-level authorized client
func NewClient(db *gorm.DB) *Client {
	return &Client{db: db}
}

func (c *Client) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, c.db).WithContext(ctx)
}

func (c *Client) Select(ctx context.Context, name string, q repositories.Query, dest interface{}) error {
	col, scope, err := authorize(ctx, c.elevated, name, opSelect)
	if err != nil {
		return err
	}
	tx, err := c.query(ctx, col, q, scope)
	if err != nil {
		return err
	}
	return tx.Find(dest).Error
}

func (c *Client) Count(ctx context.Context, name string, q repositories.Query) (int64, error) {
	col, scope, err := authorize(ctx, c.elevated, name, opSelect)
	if err != nil {
		return 0, err
	}
	q.Order, q.Limit, q.Offset = nil, 0, 0
	tx, err := c.query(ctx, col, q, scope)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Client) Insert(ctx context.Context, name string, record interface{}) error {
	col, _, err := authorize(ctx, c.elevated, name, opInsert)
	if err != nil {
		return err
	}
	if reflect.TypeOf(record) != reflect.TypeOf(col.newModel()) {
		return domainerrors.BadRequest(fmt.Sprintf("record of type %T does not belong to %s", record, name))
	}
	if err := c.conn(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, name string, id uuid.UUID, patch entities.Patch) error {
	col, _, err := authorize(ctx, c.elevated, name, opUpdate)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return domainerrors.BadRequest("empty patch")
	}

	values := make(map[string]interface{}, len(patch))
	for column, v := range patch {
		if column == entities.FieldID || !columnPattern.MatchString(column) {
			return domainerrors.BadRequest(fmt.Sprintf("invalid patch column %q", column))
		}
		values[column] = normalizeValue(v)
	}

	result := c.conn(ctx).Model(col.newModel()).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, name string, id uuid.UUID) error {
	col, _, err := authorize(ctx, c.elevated, name, opDelete)
	if err != nil {
		return err
	}
	result := c.conn(ctx).Where("id = ?", id).Delete(col.newModel())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (c *Client) query(ctx context.Context, col collection, q repositories.Query, scope []repositories.Filter) (*gorm.DB, error) {
	tx := c.conn(ctx).Model(col.newModel())

	filters := append(append([]repositories.Filter(nil), scope...), q.Filters...)
	for _, f := range filters {
		if !columnPattern.MatchString(f.Column) {
			return nil, domainerrors.BadRequest(fmt.Sprintf("invalid filter column %q", f.Column))
		}
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: normalizeValue(f.Value)})
	}
	for _, o := range q.Order {
		if !columnPattern.MatchString(o.Column) {
			return nil, domainerrors.BadRequest(fmt.Sprintf("invalid order column %q", o.Column))
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	return tx, nil
}

// normalizeValue lowers domain values to what the SQL drivers accept.
// String slices and maps are stored as JSON text.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case driver.Valuer:
		return val
	case time.Time, string, bool, int, int64, float64, []byte:
		return val
	case []string, map[string]interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		return string(b)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.String {
			out := make([]string, rv.Len())
			for i := range out {
				out[i] = rv.Index(i).String()
			}
			return normalizeValue(out)
		}
	}
	return v
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.Conflict("record already exists")
	}
	return err
}
