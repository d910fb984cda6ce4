package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/famvault/media-gateway/internal/dbx"
	"github.com/famvault/media-gateway/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, familyID, userID string) (*models.Membership, error) {
	query :=
		`SELECT family_id, user_id, role, added_at FROM family_members
		 WHERE family_id = $1 AND user_id = $2
		 `

	m := &models.Membership{}
	err := r.db.QueryRowContext(ctx, query, familyID, userID).Scan(&m.FamilyID, &m.UserID, &m.Role, &m.AddedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, familyID, userID string) (bool, error) {
	_, err := r.Get(ctx, familyID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
