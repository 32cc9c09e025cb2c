package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "users", User{}.TableName())
	require.Equal(t, "novels", Novel{}.TableName())
	require.Equal(t, "chapters", Chapter{}.TableName())
	require.Equal(t, "authors", Author{}.TableName())
	require.Equal(t, "follows", Follow{}.TableName())
	require.Equal(t, "favorites", Favorite{}.TableName())
	require.Equal(t, "notifications", Notification{}.TableName())
	require.Equal(t, "reports", Report{}.TableName())
	require.Equal(t, "vip_log", VipLog{}.TableName())
}

func TestUser_VipActive(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	require.False(t, (*User)(nil).VipActive(now))
	require.False(t, (&User{IsVip: true}).VipActive(now))
	require.False(t, (&User{IsVip: true, VipUntil: &past}).VipActive(now))
	require.False(t, (&User{IsVip: false, VipUntil: &future}).VipActive(now))
	require.True(t, (&User{IsVip: true, VipUntil: &future}).VipActive(now))
}
