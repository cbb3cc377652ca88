package cmd

import (
	"testing"

	"github.com/sportbook-io/sportbook-cli/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestLinkSummary(t *testing.T) {
	t.Run("nothing to transfer", func(t *testing.T) {
		msg := linkSummary(store.LinkOutcome{})
		assert.Contains(t, msg, "No local reservations to transfer.")
	})

	t.Run("reports the transferred count", func(t *testing.T) {
		msg := linkSummary(store.LinkOutcome{Attempted: 2, Linked: true})
		assert.Contains(t, msg, "Transferred 2 reservation(s) to your account.")
		assert.NotContains(t, msg, "%!")
	})
}
