package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ophuaconnect-api/pkg/config"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

func TestRun_DSNInvalido_DevuelveErrorSinSalir(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{DatabaseURL: "postgres://db.internal:noport/ophua"}}
	seed := &config.SeedConfig{AdminEmail: "root@ophua.io", AdminPassword: "Sup3rSecret!"}

	err := run(context.Background(), cfg, seed, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión a PostgreSQL")
}
