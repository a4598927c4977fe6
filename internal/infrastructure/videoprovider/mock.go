package videoprovider

import (
	"fmt"
	"time"
)

// Mock derives a token from the room and user only. It never calls out and
// is used whenever real credentials are absent.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (*Mock) Name() string { return ProviderMock }

func (*Mock) Generate(room, userID string, _ time.Duration) (string, error) {
	return fmt.Sprintf("mock_token_%s_%s", room, userID), nil
}
