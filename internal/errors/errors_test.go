package errors

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleErrorMessage(t *testing.T) {
	err := IO("read", "stacks/react/base/hooks.md", stderrors.New("permission denied"))
	assert.Equal(t, "io read stacks/react/base/hooks.md: permission denied", err.Error())

	bare := Absent("stat", "templates/global", nil)
	assert.Equal(t, "absent stat templates/global", bare.Error())
}

func TestIsKind(t *testing.T) {
	err := Malformed("parse", "rules.yaml", stderrors.New("bad mapping"))
	assert.True(t, IsKind(err, KindMalformed))
	assert.False(t, IsKind(err, KindIO))

	// Classification survives fmt wrapping.
	wrapped := fmt.Errorf("loading config: %w", err)
	assert.True(t, IsKind(wrapped, KindMalformed))

	assert.False(t, IsKind(stderrors.New("plain"), KindIO))
	assert.False(t, IsKind(nil, KindAbsent))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := IO("write", "out.mdc", cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestCollectorAdd(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())

	c.Add(nil)
	assert.False(t, c.HasErrors())

	c.Add(Absent("stat", "a", nil))
	c.Add(IO("read", "b", stderrors.New("boom")))
	c.Add(stderrors.New("plain failure"))

	errs := c.Errors()
	require.Len(t, errs, 3)
	// Plain errors are classified as IO.
	assert.Equal(t, KindIO, errs[2].Kind)

	assert.Len(t, c.ByKind(KindIO), 2)
	assert.Len(t, c.ByKind(KindAbsent), 1)
	assert.Empty(t, c.ByKind(KindConfig))

	c.Clear()
	assert.False(t, c.HasErrors())
	assert.Empty(t, c.Errors())
}

func TestCollectorConcurrentAdd(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Add(IO("write", fmt.Sprintf("doc-%d.mdc", n), stderrors.New("failed")))
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.Errors(), 50)
}
