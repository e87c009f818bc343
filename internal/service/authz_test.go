package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/CodeDreamers777/Assettone/internal/model"
)

func TestCanAct(t *testing.T) {
	ownerID := uuid.New()
	managerID := uuid.New()
	property := &model.Property{OwnerID: ownerID, ManagerID: &managerID}
	unmanaged := &model.Property{OwnerID: ownerID}

	tests := []struct {
		name     string
		actor    *model.Profile
		property *model.Property
		want     bool
	}{
		{"owner on own property", &model.Profile{ID: ownerID, Role: model.RoleOwner}, property, true},
		{"owner on someone else's property", &model.Profile{ID: uuid.New(), Role: model.RoleOwner}, property, false},
		{"manager on managed property", &model.Profile{ID: managerID, Role: model.RoleManager}, property, true},
		{"manager on unmanaged property", &model.Profile{ID: managerID, Role: model.RoleManager}, unmanaged, false},
		{"clerk never passes", &model.Profile{ID: ownerID, Role: model.RoleClerk}, property, false},
		{"tenant never passes", &model.Profile{ID: ownerID, Role: model.RoleTenant}, property, false},
		{"nil actor", nil, property, false},
		{"nil property", &model.Profile{ID: ownerID, Role: model.RoleOwner}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAct(tt.actor, tt.property))
		})
	}
}
