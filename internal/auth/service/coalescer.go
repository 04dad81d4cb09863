package service

import (
	"github.com/Tanimou/user-management-system-sub001/internal/auth/dto"
	"golang.org/x/sync/singleflight"
)

// RefreshCoalescer serializes refresh operations per subject. When two
// requests race to redeem the same refresh token (duplicate tab, retry
// on timeout), only the first executes the rotation; the second waits
// and receives the same pair instead of tripping the replay guard.
type RefreshCoalescer struct {
	group singleflight.Group
}

func NewRefreshCoalescer() *RefreshCoalescer {
	return &RefreshCoalescer{}
}

// Do runs operation for subjectID, or joins an in-flight run for the
// same subject. The in-flight record is cleared on every exit path,
// success or failure, so a later call starts fresh.
func (c *RefreshCoalescer) Do(subjectID string, operation func() (*dto.TokenPair, error)) (*dto.TokenPair, error) {
	v, err, _ := c.group.Do(subjectID, func() (interface{}, error) {
		return operation()
	})
	if err != nil {
		return nil, err
	}

	return v.(*dto.TokenPair), nil
}
