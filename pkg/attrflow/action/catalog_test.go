package action_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/attrflow/pkg/attrflow/action"
)

func TestCatalog_RegisterGet(t *testing.T) {
	c := action.NewCatalog()
	c.Register(action.Action{ID: "b", Scope: action.ScopeParent})
	c.Register(action.Action{ID: "a"})
	c.Register(action.Action{ID: "b", Scope: action.ScopeChildren})

	act, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, action.ScopeChildren, act.Scope)
	assert.Equal(t, []string{"a", "b"}, c.Names())
	assert.Equal(t, 2, c.Len())

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, action.ErrUnknownAction)
}

func TestCatalog_LoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	write("release.yaml", "ActionName: Release\nCheckedObjects: Children\nCheckState: \"10\"\n")
	write("approve.json", `{"CheckAttributeIDs": "Status", "Status_CheckAttribute": "draft"}`)
	write("partial.yml", "ActionName: Partial\nLanguageIDs: \"2,x\"\n")
	write("broken.yaml", "ActionName: [unclosed\n")
	write("notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	c := action.NewCatalog()
	err := c.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Contains(t, err.Error(), "partial.yml")

	assert.Equal(t, []string{"Partial", "Release", "approve"}, c.Names())

	release, err := c.Get("Release")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, release.CheckStates)

	approve, err := c.Get("approve")
	require.NoError(t, err)
	assert.Equal(t, []action.Check{{AttributeID: "Status", Condition: "draft"}}, approve.Checks)
}

func TestCatalog_LoadDirMissing(t *testing.T) {
	err := action.NewCatalog().LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCatalog_Concurrent(t *testing.T) {
	c := action.NewCatalog()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			c.Register(action.Action{ID: name})
			_, err := c.Get(name)
			assert.NoError(t, err)
			_ = c.Names()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, c.Len())
}
