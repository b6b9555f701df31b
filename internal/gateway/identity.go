package gateway

import "github.com/google/uuid"

// Identity is the resolved session identity threaded through every access
// function that mutates state. Access modules take it as an explicit
// parameter instead of looking the current user up ambiently per call.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
}
