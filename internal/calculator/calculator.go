package calculator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"secure-calculator/internal/auth"
	"secure-calculator/internal/models"
	"secure-calculator/internal/storage"
)

// Calculator owns the store handle and exposes the arithmetic and
// credential operations side by side.
type Calculator struct {
	db      *sql.DB
	users   *auth.Store
	history *storage.History
}

type options struct {
	codec auth.PasswordCodec
}

type Option func(*options)

// WithPasswordCodec overrides the default plaintext password codec.
func WithPasswordCodec(codec auth.PasswordCodec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// Open opens (creating if needed) the store at path. Close releases it.
func Open(path string, opts ...Option) (*Calculator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := storage.NewSQLite(path)
	if err != nil {
		return nil, err
	}
	history, err := storage.NewHistory(db)
	if err != nil {
		db.Close() //nolint: errcheck
		return nil, err
	}
	return &Calculator{
		db:      db,
		users:   auth.NewStore(db, o.codec),
		history: history,
	}, nil
}

func (c *Calculator) Add(a, b any) (Number, error)      { return Add(a, b) }
func (c *Calculator) Subtract(a, b any) (Number, error) { return Subtract(a, b) }
func (c *Calculator) Multiply(a, b any) (Number, error) { return Multiply(a, b) }
func (c *Calculator) Divide(a, b any) (Number, error)   { return Divide(a, b) }
func (c *Calculator) Evaluate(expression string) (Number, error) {
	return Evaluate(expression)
}

func (c *Calculator) Register(ctx context.Context, username string) (*models.User, error) {
	return c.users.Register(ctx, username)
}

func (c *Calculator) RegisterWithPassword(ctx context.Context, username, password string) (*models.User, error) {
	return c.users.RegisterWithPassword(ctx, username, password)
}

func (c *Calculator) Login(ctx context.Context, username, password string) (bool, error) {
	return c.users.Login(ctx, username, password)
}

func (c *Calculator) Logout() { c.users.Logout() }

func (c *Calculator) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return c.users.ChangePassword(ctx, username, oldPassword, newPassword)
}

// Users exposes the credential store, e.g. for HTTP handlers.
func (c *Calculator) Users() *auth.Store { return c.users }

func (c *Calculator) History() *storage.History { return c.history }

// Record runs op on a and b and stores the outcome for userID.
func (c *Calculator) Record(ctx context.Context, userID int64, op Operation, a, b any) (Number, error) {
	n, err := Apply(op, a, b)
	if err != nil {
		return Number{}, err
	}
	if err := c.save(ctx, userID, string(op), fmt.Sprintf("%v %s %v", a, op.Symbol(), b), n); err != nil {
		return Number{}, err
	}
	return n, nil
}

// RecordExpression evaluates expression and stores the outcome for userID.
func (c *Calculator) RecordExpression(ctx context.Context, userID int64, expression string) (Number, error) {
	n, err := Evaluate(expression)
	if err != nil {
		return Number{}, err
	}
	if err := c.save(ctx, userID, "evaluate", expression, n); err != nil {
		return Number{}, err
	}
	return n, nil
}

func (c *Calculator) save(ctx context.Context, userID int64, operation, expression string, n Number) error {
	return c.history.Record(ctx, &models.Calculation{
		UserID:     userID,
		Operation:  operation,
		Expression: expression,
		Result:     n.String(),
	})
}

func (c *Calculator) Close() error {
	if c.db == nil {
		return nil
	}
	log.Debug("closing store")
	return c.db.Close()
}
