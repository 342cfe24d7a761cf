package domain

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleAI     Role = "ai"
	RoleSystem Role = "system"
)

type Message struct {
	Role      Role
	Text      string
	Timestamp time.Time
}
