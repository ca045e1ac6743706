package auth_test

import (
	"testing"

	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestDailyTodo covers the empty state, an admin write and a standard read.
func TestDailyTodo(t *testing.T) {
	c := setupCentralContainer(t, nil)
	client := authsdk.NewSDKClient(c.BaseURL)

	admin := c.login(t, client, adminEmail)

	_, err := admin.GetDailyTodo(t.Context())
	require.ErrorIs(t, err, authsdk.ErrTodoNotFound)

	written, err := admin.WriteDailyTodo(t.Context(), "- ship it")
	require.NoError(t, err)
	require.True(t, written.Success)

	todo, err := admin.GetDailyTodo(t.Context())
	require.NoError(t, err)
	require.Equal(t, "- ship it", todo.Content)

	user := c.login(t, client, userEmail)
	_, err = user.WriteDailyTodo(t.Context(), "mine")
	require.ErrorIs(t, err, authsdk.ErrForbidden)
}

// TestDailyTodoOpenWrites verifies the admin gate can be switched off.
func TestDailyTodoOpenWrites(t *testing.T) {
	c := setupCentralContainer(t, map[string]string{"TODO_WRITE_REQUIRES_ADMIN": "false"})
	client := authsdk.NewSDKClient(c.BaseURL)

	user := c.login(t, client, userEmail)

	_, err := user.WriteDailyTodo(t.Context(), "mine")
	require.NoError(t, err)

	todo, err := user.GetDailyTodo(t.Context())
	require.NoError(t, err)
	require.Equal(t, "mine", todo.Content)
}
