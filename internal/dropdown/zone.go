package dropdown

import (
	"strings"

	"github.com/google/uuid"
)

// Zone IDs are namespaced per widget so several widgets can share the
// global bubblezone manager.

func newZonePrefix() string {
	return "dropdown-" + strings.SplitN(uuid.NewString(), "-", 2)[0] + ":"
}

func (m Model) inputZoneID() string {
	return m.zonePrefix + "input"
}

func (m Model) itemZoneID(title string) string {
	return m.zonePrefix + "item:" + title
}
