package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ticketdesk/internal/entities"
	apperrors "ticketdesk/pkg/errors"
)

type ProfileRepositoryInterface interface {
	FindProfileByID(ctx context.Context, id string) (*entities.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error)
}

type ProfileRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProfileRepository(storage *pgxpool.Pool, logger *zap.Logger) ProfileRepositoryInterface {
	return &ProfileRepository{storage: storage, logger: logger}
}

func (r *ProfileRepository) FindProfileByID(ctx context.Context, id string) (*entities.Profile, error) {
	return r.findProfile(ctx, r.storage, sq.Eq{"id": id})
}

func (r *ProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	return r.findProfile(ctx, r.storage, sq.Eq{"email": email})
}

func (r *ProfileRepository) findProfile(ctx context.Context, q querier, where sq.Eq) (*entities.Profile, error) {
	sqlStr, args, err := sq.Select("id", "email", "full_name", "role", "password_hash", "created_at").
		From("profiles").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p entities.Profile
	err = q.QueryRow(ctx, sqlStr, args...).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
