package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q  Querier
	tx *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{q: pool, tx: NewTxRunner(pool)}
}

// GetByID obtiene un usuario con sus métodos de pago. Retorna (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getUser(ctx, r.q, id, false)
}

// List devuelve todos los usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, role, country FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	index := make(map[string]*entity.User)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
		index[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pmRows, err := r.q.Query(ctx, `SELECT user_id, id, type, last4 FROM payment_methods ORDER BY user_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer pmRows.Close()
	for pmRows.Next() {
		var userID string
		var pm entity.PaymentMethod
		if err := pmRows.Scan(&userID, &pm.ID, &pm.Type, &pm.Last4); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		if u, ok := index[userID]; ok {
			u.PaymentMethods = append(u.PaymentMethods, pm)
		}
	}
	return list, pmRows.Err()
}

// ReplacePaymentMethods reemplaza la lista completa en una transacción. Retorna (nil, nil) si el usuario no existe.
func (r *UserRepo) ReplacePaymentMethods(ctx context.Context, id string, methods []entity.PaymentMethod) (*entity.User, error) {
	var updated *entity.User
	err := r.tx.Run(ctx, func(q Querier) error {
		u, err := getUser(ctx, q, id, true)
		if err != nil || u == nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM payment_methods WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("delete payment methods: %w", err)
		}
		for i, pm := range methods {
			if _, err := q.Exec(ctx,
				`INSERT INTO payment_methods (user_id, position, id, type, last4) VALUES ($1, $2, $3, $4, $5)`,
				id, i, pm.ID, pm.Type, pm.Last4,
			); err != nil {
				return fmt.Errorf("insert payment method: %w", err)
			}
		}
		u.PaymentMethods = append([]entity.PaymentMethod{}, methods...)
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func getUser(ctx context.Context, q Querier, id string, forUpdate bool) (*entity.User, error) {
	query := `SELECT id, name, role, country FROM users WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	rows, err := q.Query(ctx, `SELECT id, type, last4 FROM payment_methods WHERE user_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get payment methods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pm entity.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Type, &pm.Last4); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		u.PaymentMethods = append(u.PaymentMethods, pm)
	}
	return u, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &role, &u.Country); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
