package report

import "context"

type ReportService interface {
	// Query returns shift events matching the filters, newest first. Admin
	// capability is required.
	Query(ctx context.Context, req QueryRequest) ([]Row, error)
}
