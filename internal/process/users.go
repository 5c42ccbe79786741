package process

import (
	"fmt"
	"os/user"
)

// OSUserLookup verifies script users against the system user database. It
// satisfies the config.UserLookup interface.
type OSUserLookup struct{}

func (OSUserLookup) Lookup(username, group string) error {
	if _, err := user.Lookup(username); err != nil {
		return fmt.Errorf("user %s not found: %w", username, err)
	}
	if group != "" {
		if _, err := user.LookupGroup(group); err != nil {
			return fmt.Errorf("group %s not found: %w", group, err)
		}
	}
	return nil
}
