package main

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAwaitShutdownReturnsServeError(t *testing.T) {
	serveErr := make(chan error, 1)
	serveErr <- errors.New("listen tcp :8080: bind: address already in use")

	err := awaitShutdown(serveErr, make(chan os.Signal))

	assert.EqualError(t, err, "listen tcp :8080: bind: address already in use")
}

func TestAwaitShutdownReturnsNilOnSignal(t *testing.T) {
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	err := awaitShutdown(make(chan error), quit)

	assert.NoError(t, err)
}
