package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger(t *testing.T, env string) (*logger, *bytes.Buffer) {
	t.Setenv("APP_ENV", env)

	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	return &logger{entry: logrus.NewEntry(base)}, buf
}

func TestLogger_WithFields(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		contains  []string
		notContem []string
	}{
		{
			name:      "Desenvolvimento mantém só os campos relevantes",
			env:       "development",
			contains:  []string{"ad_account_id=act_1", "level=campaign", "user_id=7"},
			notContem: []string{"since="},
		},
		{
			name:     "Produção mantém todos os campos",
			env:      "production",
			contains: []string{"ad_account_id=act_1", "level=campaign", "user_id=7", "since=2024-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger(t, tt.env)

			l.WithFields(Fields{
				"ad_account_id": "act_1",
				"level":         "campaign",
				"user_id":       7,
				"since":         "2024-01-01",
			}).Info("teste")

			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
			for _, c := range tt.notContem {
				assert.NotContains(t, buf.String(), c)
			}
		})
	}
}

func TestLogger_WithFieldIgnoradoEmDesenvolvimento(t *testing.T) {
	l, _ := newBufferLogger(t, "dev")

	assert.Same(t, l, l.WithField("since", "2024-01-01"))
	assert.NotSame(t, l, l.WithField("credential_id", "c1"))
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), " abc-123 ")
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "abc-123", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}
