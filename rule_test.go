package agentready_test

import (
	"context"
	"testing"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRule(id string, category agentready.Category, priority int, issues []agentready.Issue) *mock.Rule {
	return &mock.Rule{
		MetadataFn: func() agentready.RuleMetadata {
			return agentready.RuleMetadata{
				ID:              id,
				Title:           id,
				Category:        category,
				DefaultSeverity: agentready.SeverityMedium,
				Priority:        priority,
			}
		},
		CheckFn: func(_ context.Context, _ *agentready.Document) ([]agentready.Issue, error) {
			return issues, nil
		},
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("accepts rules with unique IDs", func(t *testing.T) {
		t.Parallel()

		r := agentready.NewRegistry()
		require.NoError(t, r.Register(newMockRule("a", agentready.CategoryReadability, 10, nil)))
		require.NoError(t, r.Register(newMockRule("b", agentready.CategoryTechnical, 20, nil)))

		assert.Equal(t, 2, r.Len())
	})

	t.Run("rejects a duplicate rule ID", func(t *testing.T) {
		t.Parallel()

		r := agentready.NewRegistry()
		require.NoError(t, r.Register(newMockRule("a", agentready.CategoryReadability, 10, nil)))

		err := r.Register(newMockRule("a", agentready.CategoryTechnical, 20, nil))
		assert.Equal(t, agentready.ECONFLICT, agentready.ErrorCode(err))
	})

	t.Run("rejects registration after freeze", func(t *testing.T) {
		t.Parallel()

		r := agentready.NewRegistry()
		r.Freeze()

		err := r.Register(newMockRule("a", agentready.CategoryReadability, 10, nil))
		assert.Equal(t, agentready.EINVALID, agentready.ErrorCode(err))
		assert.True(t, r.Frozen())
	})

	t.Run("rejects malformed metadata", func(t *testing.T) {
		t.Parallel()

		r := agentready.NewRegistry()
		err := r.Register(newMockRule("", agentready.CategoryReadability, 10, nil))
		assert.Equal(t, agentready.EINVALID, agentready.ErrorCode(err))
	})
}

func TestRegistry_Rules_SortedByPriority(t *testing.T) {
	t.Parallel()

	r := agentready.NewRegistry()
	require.NoError(t, r.RegisterAll(
		newMockRule("low", agentready.CategoryMisc, 1, nil),
		newMockRule("high", agentready.CategoryMisc, 100, nil),
		newMockRule("mid-b", agentready.CategoryMisc, 50, nil),
		newMockRule("mid-a", agentready.CategoryMisc, 50, nil),
	))

	ids := make([]string, 0, 4)
	for _, rule := range r.Rules() {
		ids = append(ids, rule.Metadata().ID)
	}

	assert.Equal(t, []string{"high", "mid-a", "mid-b", "low"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r := agentready.NewRegistry()
	require.NoError(t, r.Register(newMockRule("a", agentready.CategoryReadability, 10, nil)))

	assert.NotNil(t, r.Get("a"))
	assert.Nil(t, r.Get("missing"))
}
