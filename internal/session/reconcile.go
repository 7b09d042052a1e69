package session

import (
	"context"
	"time"

	"codeberg.org/framegen/client/internal/logger"
)

// starts the background reconciler. it compensates for credential
// changes that raise no inline event - another process clearing the
// jar, an external tool writing a token - by polling, plus reacting
// immediately to storage-change notifications.
func (m *Manager) StartReconciler(ctx context.Context) {
	go m.reconcileLoop(ctx)
}

func (m *Manager) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.reconcile(ctx)
		case <-m.changes:
			m.reconcile(ctx)
		}
	}
}

// compares the machine against the token store and submits the
// correcting event. skipped while a load is already in flight so
// concurrent validation calls never race each other.
func (m *Manager) reconcile(ctx context.Context) {
	snapshot := m.Snapshot()

	if snapshot.State == StateLoading || snapshot.State == StateUninitialized {
		return
	}

	_, hasToken := m.tokens.Get()

	if !hasToken && snapshot.State == StateAuthenticated {
		logger.Info("token cleared externally, demoting session")
		m.apply(eventTokenMissing, nil, "")
		return
	}

	if hasToken && snapshot.State == StateAnonymous {
		logger.Debug("token appeared while anonymous, re-validating")
		m.load(ctx)
	}
}
