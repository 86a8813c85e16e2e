package syncerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"waynotes/internal/syncerr"
)

func TestKindOf(t *testing.T) {
	base := syncerr.New(syncerr.KindNetwork, "pull", errors.New("connection reset"))

	assert.Equal(t, syncerr.KindNetwork, syncerr.KindOf(base))

	wrapped := fmt.Errorf("sync failed: %w", base)
	assert.Equal(t, syncerr.KindNetwork, syncerr.KindOf(wrapped))

	assert.Equal(t, syncerr.KindUnknown, syncerr.KindOf(errors.New("plain")))
	assert.Equal(t, syncerr.KindUnknown, syncerr.KindOf(nil))
}

func TestIsKind(t *testing.T) {
	err := syncerr.Newf(syncerr.KindLockHeld, "push", "lock file busy")

	assert.True(t, syncerr.IsKind(err, syncerr.KindLockHeld))
	assert.False(t, syncerr.IsKind(err, syncerr.KindNetwork))
}

func TestErrorMessage(t *testing.T) {
	err := syncerr.New(syncerr.KindAuthExpired, "list lists", errors.New("401"))
	assert.Equal(t, "list lists: auth expired: 401", err.Error())

	bare := &syncerr.Error{Kind: syncerr.KindLockHeld, Op: "pull"}
	assert.Equal(t, "pull: already syncing", bare.Error())
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := syncerr.New(syncerr.KindLocalStore, "save state", inner)
	assert.True(t, errors.Is(err, inner))
}
