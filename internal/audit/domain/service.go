package domain

import "context"

type ListAuditRequest struct {
	Action string
	Limit  int
}

type ListAuditResponse struct {
	Entries []AuditLog `json:"entries"`
}

type Service interface {
	// Record never fails the caller's operation; write errors are logged
	// and swallowed.
	Record(ctx context.Context, action, targetType, targetID string, metadata map[string]interface{})
	List(ctx context.Context, req ListAuditRequest) (ListAuditResponse, error)
}
