package models

import (
	"github.com/google/uuid"

	"stremini.backend/pkg/utils"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = utils.GenerateUUIDv7()
	}
}

// All lists every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&WaitlistEntry{},
		&TeamMember{},
		&BlogPost{},
		&Identity{},
		&UserRole{},
	}
}
