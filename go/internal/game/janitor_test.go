package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/timeright/go/internal/models"
)

func TestJanitor_SweepsOnTick(t *testing.T) {
	app, st, clock := newTestApp(t)
	user := st.CreateUser("alice", "hash")
	stale := st.CreateGameSession(user.ID, clock.Now().UnixMilli()-models.SessionTimeoutMs-1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := NewJanitor(app, clock, time.Minute)
	done := make(chan struct{})
	go func() {
		janitor.Run(ctx)
		close(done)
	}()

	// Wait for the ticker to be armed before advancing the fake clock.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		session, ok := st.GetGameSession(stale.ID)
		return ok && session.IsCompleted
	}, time.Second, 5*time.Millisecond)

	session, _ := st.GetGameSession(stale.ID)
	require.NotNil(t, session.DeviationMs)
	assert.Equal(t, models.SessionTimeoutMs, *session.DeviationMs)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on context cancellation")
	}
}
