package loader_test

import (
	"errors"
	"testing"

	"file-gateway/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "a", enabled: true}
	disabled := &stubFeature{name: "b", enabled: false}

	mgr := loader.NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	assert.Len(t, mgr.Features(), 2)
	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := &stubFeature{name: "broken", enabled: true, err: errors.New("boom")}
	after := &stubFeature{name: "after", enabled: true}

	mgr := loader.NewManager()
	mgr.Register(failing)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
	assert.False(t, after.loaded)
}
