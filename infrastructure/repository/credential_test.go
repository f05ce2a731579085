package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/vault"
)

func newCredentialStore(t *testing.T) (*CredentialStore, sqlmock.Sqlmock, *vault.Cipher) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cipher, err := vault.NewCipher("segredo-de-teste")
	require.NoError(t, err)

	return NewCredentialStore(db, cipher), mock, cipher
}

func TestCredentialStore_GetByUserAndAdAccount(t *testing.T) {
	store, mock, cipher := newCredentialStore(t)
	ctx := context.Background()

	encrypted, err := cipher.Encrypt("EAAB-token")
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(24 * time.Hour)

	rows := sqlmock.NewRows(credentialColumns).
		AddRow("cred-1", 7, "act_123", "Loja Centro", encrypted, "bearer", "user", expiresAt, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, ad_account_id")).
		WithArgs("act_123", 7).
		WillReturnRows(rows)

	credential, err := store.GetByUserAndAdAccount(ctx, 7, "act_123")

	require.NoError(t, err)
	require.NotNil(t, credential)
	assert.Equal(t, "cred-1", credential.ID)
	assert.Equal(t, "EAAB-token", credential.AccessToken)
	assert.Equal(t, domain.TokenKindUser, credential.Kind)
	require.NotNil(t, credential.ExpiresAt)
	assert.True(t, expiresAt.Equal(*credential.ExpiresAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStore_GetByUserAndAdAccount_NaoEncontrada(t *testing.T) {
	store, mock, _ := newCredentialStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, ad_account_id")).
		WillReturnRows(sqlmock.NewRows(credentialColumns))

	credential, err := store.GetByUserAndAdAccount(context.Background(), 7, "act_999")

	require.NoError(t, err)
	assert.Nil(t, credential)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStore_ListByUser_TokenLegadoEmTextoPuro(t *testing.T) {
	store, mock, _ := newCredentialStore(t)
	now := time.Now()

	rows := sqlmock.NewRows(credentialColumns).
		AddRow("cred-1", 7, "act_1", "", "token-em-claro", "bearer", "system", nil, now, now).
		AddRow("cred-2", 7, "act_2", "", "outro-token", "bearer", "system", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE user_id = $1 ORDER BY ad_account_id ASC")).
		WithArgs(7).
		WillReturnRows(rows)

	credentials, err := store.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, credentials, 2)
	assert.Equal(t, "token-em-claro", credentials[0].AccessToken)
	assert.Nil(t, credentials[0].ExpiresAt)
	assert.Equal(t, domain.TokenKindSystem, credentials[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStore_ListAll_ErroNaQuery(t *testing.T) {
	store, mock, _ := newCredentialStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM credentials ORDER BY")).
		WillReturnError(errors.New("conexão perdida"))

	credentials, err := store.ListAll(context.Background())

	assert.Error(t, err)
	assert.Nil(t, credentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStore_SaveOrUpdate(t *testing.T) {
	store, mock, _ := newCredentialStore(t)
	now := time.Now()

	credential := &domain.Credential{
		UserID:      7,
		AdAccountID: "act_123",
		AccessToken: "EAAB-token",
		Kind:        domain.TokenKindSystem,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credentials")).
		WithArgs(
			sqlmock.AnyArg(),
			7,
			"act_123",
			"",
			sqlmock.AnyArg(),
			domain.DefaultTokenType,
			"system",
			nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("cred-existente", now, now))

	saved, err := store.SaveOrUpdate(context.Background(), credential)

	require.NoError(t, err)
	assert.Equal(t, "cred-existente", saved.ID)
	assert.Equal(t, "EAAB-token", saved.AccessToken)
	assert.Equal(t, domain.DefaultTokenType, saved.TokenType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStore_SaveOrUpdate_Erro(t *testing.T) {
	store, mock, _ := newCredentialStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credentials")).
		WillReturnError(errors.New("violação de chave estrangeira"))

	saved, err := store.SaveOrUpdate(context.Background(), &domain.Credential{UserID: 1, AdAccountID: "act_1"})

	assert.Error(t, err)
	assert.Nil(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
