package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/config/server"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *server.Config
		wantErr bool
	}{
		{
			name: "valid configuration",
			config: &server.Config{
				Address:      ":8080",
				ReadTimeout:  15 * time.Second,
				WriteTimeout: time.Minute,
			},
			wantErr: false,
		},
		{
			name: "missing address",
			config: &server.Config{
				ReadTimeout:  15 * time.Second,
				WriteTimeout: time.Minute,
			},
			wantErr: true,
		},
		{
			name: "invalid read timeout",
			config: &server.Config{
				Address:      ":8080",
				WriteTimeout: time.Minute,
			},
			wantErr: true,
		},
		{
			name: "invalid write timeout",
			config: &server.Config{
				Address:     ":8080",
				ReadTimeout: 15 * time.Second,
			},
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

	cfg := server.New()
	require.NoError(t, cfg.Validate())
	require.Equal(t, server.DefaultAddress, cfg.Address)
	require.True(t, cfg.SecurityEnabled)
}
