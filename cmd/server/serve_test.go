package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/config"
)

func TestRunServe_BadDatabaseURLReturnsError(t *testing.T) {
	cfg = config.Config{DatabaseURL: "postgres://app@db.internal:notaport/grndwrk", Port: "0"}
	logger = zerolog.Nop()
	serveCmd.SetContext(context.Background())

	err := runServe(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect db")
}

func TestNewOverlay_BadRedisURLReturnsError(t *testing.T) {
	cfg = config.Config{RedisURL: "://not-a-url"}
	logger = zerolog.Nop()

	_, err := newOverlay(context.Background())
	assert.Error(t, err)
}
