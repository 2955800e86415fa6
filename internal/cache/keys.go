package cache

import "fmt"

// ListKey names the cached list view of one entity kind within one tenant.
func ListKey(entity, tenantID string) string {
	return fmt.Sprintf("%s:list:%s", entity, tenantID)
}
