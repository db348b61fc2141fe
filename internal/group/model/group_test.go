package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userModel "github.com/festy23/prode/internal/user/model"
)

func TestGroup_TableNames(t *testing.T) {
	assert.Equal(t, "user_groups", Group{}.TableName())
	assert.Equal(t, "group_members", GroupMember{}.TableName())
}

func TestGroup_ActiveMemberIDs(t *testing.T) {
	group := &Group{
		Members: []GroupMember{
			{UserID: "admin", IsActive: true},
			{UserID: "left", IsActive: false},
			{UserID: "off", IsActive: true, User: &userModel.User{UserID: "off", IsActive: false}},
			{UserID: "on", IsActive: true, User: &userModel.User{UserID: "on", IsActive: true}},
		},
	}

	assert.Equal(t, []string{"admin", "on"}, group.ActiveMemberIDs())
	assert.Empty(t, (&Group{}).ActiveMemberIDs())
}
