package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/fb-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

//go:generate mockgen -source=credential.go -destination=mocks/mock_credential.go -package=mocks

const credentialsTable = "credentials"

var credentialColumns = []string{
	"id", "user_id", "ad_account_id", "account_name", "access_token",
	"token_type", "kind", "expires_at", "created_at", "updated_at",
}

type CredentialRepository interface {
	GetByUserAndAdAccount(ctx context.Context, userID int, adAccountID string) (*domain.Credential, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Credential, error)
	ListAll(ctx context.Context) ([]*domain.Credential, error)
	SaveOrUpdate(ctx context.Context, credential *domain.Credential) (*domain.Credential, error)
}

// TokenCipher cifra o access_token antes de gravar
type TokenCipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(value string) (string, error)
}

type CredentialStore struct {
	conn   postgres.Queryer
	cipher TokenCipher
}

func NewCredentialStore(conn postgres.Queryer, cipher TokenCipher) *CredentialStore {
	return &CredentialStore{
		conn:   conn,
		cipher: cipher,
	}
}

// GetByUserAndAdAccount retorna nil, nil quando não existe credencial
func (r *CredentialStore) GetByUserAndAdAccount(ctx context.Context, userID int, adAccountID string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(squirrel.Eq{"user_id": userID, "ad_account_id": adAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	credential, err := r.scanCredential(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return credential, nil
}

func (r *CredentialStore) ListByUser(ctx context.Context, userID int) ([]*domain.Credential, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *CredentialStore) ListAll(ctx context.Context) ([]*domain.Credential, error) {
	return r.list(ctx, nil)
}

func (r *CredentialStore) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Credential, error) {
	builder := squirrel.
		Select(credentialColumns...).
		From(credentialsTable).
		OrderBy("ad_account_id ASC").
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	credentials := make([]*domain.Credential, 0)
	for rows.Next() {
		credential, err := r.scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear credenciais: %w", err)
		}
		credentials = append(credentials, credential)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return credentials, nil
}

// SaveOrUpdate grava a credencial; se já existir para (user_id, ad_account_id)
// o token e a expiração são substituídos no lugar.
func (r *CredentialStore) SaveOrUpdate(ctx context.Context, credential *domain.Credential) (*domain.Credential, error) {
	if credential.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da credencial: %w", err)
		}
		credential.ID = id
	}

	if credential.TokenType == "" {
		credential.TokenType = domain.DefaultTokenType
	}

	token, err := r.cipher.Encrypt(credential.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao cifrar token: %w", err)
	}

	query, args, err := squirrel.
		Insert(credentialsTable).
		Columns("id", "user_id", "ad_account_id", "account_name", "access_token", "token_type", "kind", "expires_at").
		Values(
			credential.ID,
			credential.UserID,
			credential.AdAccountID,
			credential.AccountName,
			token,
			credential.TokenType,
			string(credential.Kind),
			credential.ExpiresAt,
		).
		Suffix(`ON CONFLICT (user_id, ad_account_id) DO UPDATE SET
			account_name = COALESCE(NULLIF(EXCLUDED.account_name, ''), credentials.account_name),
			access_token = EXCLUDED.access_token,
			token_type = EXCLUDED.token_type,
			kind = EXCLUDED.kind,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved := *credential
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao salvar credencial: %w", err)
	}

	return &saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CredentialStore) scanCredential(row rowScanner) (*domain.Credential, error) {
	var (
		credential domain.Credential
		kind       string
		expiresAt  sql.NullTime
	)

	err := row.Scan(
		&credential.ID,
		&credential.UserID,
		&credential.AdAccountID,
		&credential.AccountName,
		&credential.AccessToken,
		&credential.TokenType,
		&kind,
		&expiresAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	credential.Kind = domain.TokenKind(kind)
	if expiresAt.Valid {
		t := expiresAt.Time.In(time.UTC)
		credential.ExpiresAt = &t
	}

	credential.AccessToken, err = r.cipher.Decrypt(credential.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("credencial %s: %w", credential.ID, err)
	}

	return &credential, nil
}
