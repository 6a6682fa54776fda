package notifier

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"skconsole/kontext"
	"skconsole/ui"
)

func render(m *Model) string {
	ktx := &kontext.ProgramKtx{WindowWidth: 100, WindowHeight: 100, AvailableHeight: 100}
	return ansi.Strip(m.View(ktx, ui.NewRenderer(ktx)))
}

func TestNotifier(t *testing.T) {
	t.Run("renders nothing when idle", func(t *testing.T) {
		assert.Empty(t, render(New()))
	})

	t.Run("spinning has priority", func(t *testing.T) {
		m := New()

		cmd := m.SpinWithLoadingMsg("Loading subjects")

		assert.NotNil(t, cmd)
		assert.True(t, m.HasPriority())
		assert.Contains(t, render(m), "Loading subjects")
	})

	t.Run("error contains cause", func(t *testing.T) {
		m := New()

		m.ShowErrorMsg("Failed to register subject", fmt.Errorf("status 409"))

		assert.False(t, m.HasPriority())
		assert.True(t, m.IsShowingError())
		assert.Contains(t, render(m), "Failed to register subject: status 409")
	})

	t.Run("success", func(t *testing.T) {
		m := New()

		m.ShowSuccessMsg("Schema registered")

		assert.False(t, m.IsShowingError())
		assert.Contains(t, render(m), "Schema registered")
	})

	t.Run("idle clears message", func(t *testing.T) {
		m := New()
		m.ShowSuccessMsg("Schema registered")

		m.Idle()

		assert.Empty(t, render(m))
	})

	t.Run("auto hide carries tag", func(t *testing.T) {
		m := New()

		cmd := m.AutoHideCmd("subjects-page")

		assert.NotNil(t, cmd)
	})
}
