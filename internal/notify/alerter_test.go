package notify_test

import (
	"context"
	"errors"
	"testing"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"

	"github.com/foliohq/folio/internal/notify"
)

type mockSlackAPI struct {
	postFunc func(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
	calls    int
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error) {
	m.calls++
	return m.postFunc(ctx, channelID, options...)
}

func TestSlackAlerter_Alert(t *testing.T) {
	t.Parallel()

	t.Run("posts_to_configured_channel", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{
			postFunc: func(_ context.Context, channelID string, _ ...slacklib.MsgOption) (string, string, error) {
				assert.Equal(t, "#ops", channelID)
				return "#ops", "123.456", nil
			},
		}

		a := notify.NewSlackAlerter(api, "#ops")
		a.Alert(context.Background(), "provider credentials rejected")

		assert.Equal(t, 1, api.calls)
	})

	t.Run("delivery_failure_does_not_panic_or_propagate", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{
			postFunc: func(_ context.Context, _ string, _ ...slacklib.MsgOption) (string, string, error) {
				return "", "", errors.New("slack: channel_not_found")
			},
		}

		a := notify.NewSlackAlerter(api, "#ops")

		assert.NotPanics(t, func() {
			a.Alert(context.Background(), "provider credentials rejected")
		})
	})
}
