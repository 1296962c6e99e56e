package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/drivewatch/internal/httpclient"
	"github.com/aleister1102/drivewatch/internal/notifier/discord"
)

// fakeTransport scripts a sequence of (statusCode, err) outcomes.
type fakeTransport struct {
	statusCodes []int
	errs        []error
	calls       int
	bodies      [][]byte
	urls        []string
}

func (ft *fakeTransport) Post(_ context.Context, webhookURL string, body []byte) (int, error) {
	i := ft.calls
	ft.calls++
	ft.bodies = append(ft.bodies, body)
	ft.urls = append(ft.urls, webhookURL)

	status := 200
	if i < len(ft.statusCodes) {
		status = ft.statusCodes[i]
	}
	var err error
	if i < len(ft.errs) {
		err = ft.errs[i]
	}
	return status, err
}

func noSleepPolicy(maxAttempts int) httpclient.RetryPolicy {
	policy := httpclient.NewRetryPolicy(maxAttempts, time.Second)
	policy.Sleep = func(context.Context, time.Duration) error { return nil }
	return policy
}

func testPayload(title string) discord.MessagePayload {
	return discord.NewMessagePayloadBuilder().
		AddEmbed(discord.NewEmbedBuilder().WithTitle(title).Build()).
		Build()
}

func TestWebhookClient_RetriesNonSuccessStatus(t *testing.T) {
	transport := &fakeTransport{statusCodes: []int{429, 500, 204}}
	client := NewWebhookClient(transport, noSleepPolicy(3), zerolog.Nop())

	err := client.Send(context.Background(), "https://hooks.example.com/x", testPayload("test"))
	require.NoError(t, err)
	assert.Equal(t, 3, transport.calls)
}

func TestWebhookClient_SurfacesFinalErrorAfterExhaustion(t *testing.T) {
	transport := &fakeTransport{statusCodes: []int{500, 500, 500}}
	client := NewWebhookClient(transport, noSleepPolicy(3), zerolog.Nop())

	err := client.Send(context.Background(), "https://hooks.example.com/x", testPayload("test"))
	assert.Error(t, err)
	assert.Equal(t, 3, transport.calls)
}

func TestWebhookClient_RetriesTransportErrors(t *testing.T) {
	transport := &fakeTransport{errs: []error{errors.New("connection reset"), nil}}
	client := NewWebhookClient(transport, noSleepPolicy(3), zerolog.Nop())

	err := client.Send(context.Background(), "https://hooks.example.com/x", testPayload("test"))
	require.NoError(t, err)
	assert.Equal(t, 2, transport.calls)
}

func TestWebhookClient_EmptyURLIsSkipped(t *testing.T) {
	transport := &fakeTransport{}
	client := NewWebhookClient(transport, noSleepPolicy(3), zerolog.Nop())

	require.NoError(t, client.Send(context.Background(), "", testPayload("test")))
	assert.Zero(t, transport.calls)
}

func TestNotificationHelper_SendBatchContinuesPastFailures(t *testing.T) {
	// Second item fails all attempts; first and third succeed.
	transport := &fakeTransport{statusCodes: []int{204, 500, 500, 204}}
	client := NewWebhookClient(transport, noSleepPolicy(2), zerolog.Nop())
	helper := NewNotificationHelper(client, zerolog.Nop())

	payloads := []discord.MessagePayload{testPayload("a"), testPayload("b"), testPayload("c")}
	results := helper.SendBatch(context.Background(), "https://hooks.example.com/x", payloads, 0)

	assert.Equal(t, []bool{true, false, true}, results)
}

func TestNotificationHelper_SendBatchStopsOnCancel(t *testing.T) {
	transport := &fakeTransport{}
	client := NewWebhookClient(transport, noSleepPolicy(1), zerolog.Nop())
	helper := NewNotificationHelper(client, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payloads := []discord.MessagePayload{testPayload("a"), testPayload("b")}
	results := helper.SendBatch(ctx, "https://hooks.example.com/x", payloads, time.Hour)

	assert.Equal(t, []bool{false, false}, results)
}
