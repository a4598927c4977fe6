package videoprovider

import (
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"
)

// LiveKit signs LiveKit access tokens granting room-join for a single room.
type LiveKit struct {
	apiKey    string
	apiSecret string
}

func NewLiveKit(apiKey, apiSecret string) *LiveKit {
	return &LiveKit{apiKey: apiKey, apiSecret: apiSecret}
}

func (*LiveKit) Name() string { return ProviderLiveKit }

func (l *LiveKit) Generate(room, userID string, ttl time.Duration) (string, error) {
	at := auth.NewAccessToken(l.apiKey, l.apiSecret)
	at.AddGrant(&auth.VideoGrant{
		RoomJoin: true,
		Room:     room,
	}).
		SetIdentity(userID).
		SetValidFor(ttl)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("livekit token: %w", err)
	}
	return token, nil
}
