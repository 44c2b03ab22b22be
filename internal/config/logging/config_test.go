package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/config/logging"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *logging.Config
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  &logging.Config{Level: "info", Encoding: "json"},
			wantErr: false,
		},
		{
			name:    "console encoding",
			config:  &logging.Config{Level: "debug", Encoding: "console"},
			wantErr: false,
		},
		{
			name:    "missing level",
			config:  &logging.Config{Encoding: "json"},
			wantErr: true,
		},
		{
			name:    "invalid level",
			config:  &logging.Config{Level: "verbose", Encoding: "json"},
			wantErr: true,
		},
		{
			name:    "invalid encoding",
			config:  &logging.Config{Level: "info", Encoding: "text"},
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

	cfg := logging.New()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "info", cfg.Level)
	require.Equal(t, "json", cfg.Encoding)
	require.False(t, cfg.Development)
}
