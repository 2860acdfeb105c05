// Package model defines the persisted entities of the panel.
package model

// Known role labels. The column is free text, registration may carry any
// value, these are the ones the form offers.
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
	RoleModerator     = "Moderator"
	RoleGuest         = "Guest"
	RoleSuperUser     = "SuperUser"
	RoleEditor        = "Editor"
	RoleCollaborator  = "Collaborator"
	RoleVisitor       = "Visitor"
)

// User is a registered account. PasswordHash is optional and never holds a
// plaintext credential.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"size:80;not null"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Role         string `json:"role" gorm:"size:50;not null"`
	PasswordHash string `json:"-" gorm:"size:255"`
}
