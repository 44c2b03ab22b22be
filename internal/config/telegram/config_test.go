package telegram_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/config/telegram"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *telegram.Config
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  &telegram.Config{Token: "123:abc", PollTimeout: 60},
			wantErr: false,
		},
		{
			name:    "missing token",
			config:  &telegram.Config{PollTimeout: 60},
			wantErr: true,
		},
		{
			name:    "invalid poll timeout",
			config:  &telegram.Config{Token: "123:abc", PollTimeout: 0},
			wantErr: true,
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.config.Validate()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := telegram.New()
	require.Equal(t, telegram.DefaultPollTimeout, cfg.PollTimeout)
	require.Error(t, cfg.Validate())
}
