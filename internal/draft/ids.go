package draft

import (
	"strings"

	"github.com/google/uuid"
)

// NewTaskID returns an id not present in existing. Ids are opaque to the server;
// we keep them short like the dashboard always has.
func NewTaskID(existing map[string]bool) string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		if !existing[id] {
			return id
		}
	}
}
