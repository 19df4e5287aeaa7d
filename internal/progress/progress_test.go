package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/advisory-cli/internal/model"
)

func TestCompute(t *testing.T) {
	t.Parallel()
	cat := model.DefaultCatalog()

	t.Run("two of fifteen done", func(t *testing.T) {
		t.Parallel()
		p := Compute(model.ModuleFlags{"questionnaire": true, "financialGoals": true}, cat)
		assert.Equal(t, 13, p.Percent)
		assert.Equal(t, 2, p.Completed)
		assert.Equal(t, 15, p.Total)
		assert.Equal(t, model.ModuleKey("netWorth"), p.Next)
	})

	t.Run("nothing done points at the questionnaire", func(t *testing.T) {
		t.Parallel()
		p := Compute(model.ModuleFlags{}, cat)
		assert.Zero(t, p.Percent)
		assert.Equal(t, model.ModuleKey("questionnaire"), p.Next)
	})

	t.Run("nil flags behave like none done", func(t *testing.T) {
		t.Parallel()
		p := Compute(nil, cat)
		assert.Zero(t, p.Completed)
		assert.Equal(t, model.ModuleKey("questionnaire"), p.Next)
	})

	t.Run("all done", func(t *testing.T) {
		t.Parallel()
		flags := make(model.ModuleFlags)
		for _, key := range cat.ModuleKeys() {
			flags[key] = true
		}
		p := Compute(flags, cat)
		assert.Equal(t, 100, p.Percent)
		assert.Empty(t, p.Next)
	})

	t.Run("next follows catalogue priority, not flag map order", func(t *testing.T) {
		t.Parallel()
		// Everything after cashFlow done; the gap decides.
		flags := make(model.ModuleFlags)
		for _, key := range cat.ModuleKeys() {
			flags[key] = true
		}
		flags["cashFlow"] = false
		flags["bonds"] = false

		for range 20 {
			p := Compute(flags, cat)
			assert.Equal(t, model.ModuleKey("cashFlow"), p.Next)
		}
	})

	t.Run("flags outside the catalogue are ignored", func(t *testing.T) {
		t.Parallel()
		p := Compute(model.ModuleFlags{"questionnaire": true, "legacyModule": true}, cat)
		assert.Equal(t, 1, p.Completed)
		assert.Equal(t, 15, p.Total)
	})
}

func TestCompute_EmptyCatalog(t *testing.T) {
	t.Parallel()
	cat, err := model.ParseCatalog([]byte("modules: []"))
	assert.NoError(t, err)

	p := Compute(model.ModuleFlags{"questionnaire": true}, cat)
	assert.Zero(t, p.Percent)
	assert.Zero(t, p.Total)
	assert.Empty(t, p.Next)
}
