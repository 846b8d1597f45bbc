package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

func TestValidateNewUser(t *testing.T) {
	base := models.User{Name: "مدير الوكالة", Username: "manager1", Role: "manager"}

	tests := []struct {
		name     string
		mutate   func(u *models.User)
		password string
		wantErr  bool
	}{
		{"valid manager", func(u *models.User) {}, "s3cret-pass", false},
		{"valid clerk", func(u *models.User) { u.Role = "clerk" }, "s3cret-pass", false},
		{"missing username", func(u *models.User) { u.Username = " " }, "s3cret-pass", true},
		{"missing name", func(u *models.User) { u.Name = "" }, "s3cret-pass", true},
		{"short password", func(u *models.User) {}, "short", true},
		{"unknown role", func(u *models.User) { u.Role = "owner" }, "s3cret-pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base
			tt.mutate(&u)
			err := validateNewUser(u, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
