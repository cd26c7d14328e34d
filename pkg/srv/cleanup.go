package srv

import "context"

// cleanupService releases shared resources, such as the sqlite handle and
// the enrichment cache, when services are shut down. Register it first:
// ShutdownServices runs in reverse, so it closes after every front end.
type cleanupService struct {
	release func() error
}

func NewCleanup(release func() error) Service {
	return &cleanupService{release: release}
}

func (c *cleanupService) Start(context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(context.Context) error {
	if c.release == nil {
		return nil
	}
	return c.release()
}
