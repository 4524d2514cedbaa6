package bootstrap

import "context"

// AuditLog adalah satu entri jejak operasional (start/stop server dsb.),
// terpisah dari application log biasa.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
