package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferSummary(t *testing.T) {
	t.Run("no pending reservations", func(t *testing.T) {
		assert.Empty(t, transferSummary(0, 0))
	})

	t.Run("all transferred", func(t *testing.T) {
		msg := transferSummary(3, 0)
		assert.Contains(t, msg, "3 anonymous reservation(s) were transferred to your account.")
	})

	t.Run("link failed during login", func(t *testing.T) {
		msg := transferSummary(3, 3)
		assert.NotContains(t, msg, "transferred to your account")
		assert.Contains(t, msg, "3 reservation(s) are still stored locally")
		assert.Contains(t, msg, "sportbook reservations link")
	})
}
