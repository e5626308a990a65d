package alerts_test

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertflow/relay/modules/alerts"
	"github.com/alertflow/relay/pkg/broadcast"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type relayFixture struct {
	svc    *alerts.Service
	server *httptest.Server
}

func newRelayFixture(t *testing.T, opts ...alerts.ServiceOption) *relayFixture {
	t.Helper()

	bus := broadcast.NewMemoryBus(16)
	t.Cleanup(func() { _ = bus.Close() })

	log := testLogger()
	svc := alerts.NewService(alerts.NewMemoryStore(), bus, log, opts...)

	server := httptest.NewServer(alerts.NewHandler(svc, log).Router())
	t.Cleanup(server.Close)

	return &relayFixture{svc: svc, server: server}
}

func submitAlert(t *testing.T, f *relayFixture, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(f.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// streamClient reads SSE frames from a subscription.
type streamClient struct {
	resp   *http.Response
	rd     *bufio.Reader
	cancel context.CancelFunc
}

func openStream(t *testing.T, f *relayFixture, path string) *streamClient {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	sc := &streamClient{resp: resp, rd: bufio.NewReader(resp.Body), cancel: cancel}
	t.Cleanup(sc.close)
	return sc
}

func (c *streamClient) close() {
	c.cancel()
	_ = c.resp.Body.Close()
}

// nextDataFrame reads lines until it finds a data frame, skipping comments.
func (c *streamClient) nextDataFrame(t *testing.T) alerts.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, err := c.rd.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if payload, found := strings.CutPrefix(line, "data: "); found {
			var ev alerts.Event
			require.NoError(t, json.Unmarshal([]byte(payload), &ev))
			return ev
		}
	}
	t.Fatal("no data frame before deadline")
	return alerts.Event{}
}

// nextLine reads one raw line from the stream.
func (c *streamClient) nextLine(t *testing.T) string {
	t.Helper()
	line, err := c.rd.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(line, "\n")
}

func TestSubmitEndpoint(t *testing.T) {
	t.Run("accepts alert and echoes it back", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `{"severity":"high"}`)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status string       `json:"status"`
			Alert  alerts.Alert `json:"alert"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "alert stored", body.Status)
		assert.Equal(t, "high", body.Alert["severity"])
	})

	t.Run("put is accepted too", func(t *testing.T) {
		f := newRelayFixture(t)

		req, err := http.NewRequest(http.MethodPut, f.server.URL+"/alerts/ops", strings.NewReader(`{"severity":"low"}`))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bare route uses the default group", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts", `{"severity":"high"}`)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		stream := openStream(t, f, "/alerts/default")
		ev := stream.nextDataFrame(t)
		assert.Equal(t, "high", ev.Data["severity"])
	})

	t.Run("rejects non-JSON body", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `not json`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects non-scalar values", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `{"nested":{"a":1}}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejected submission has no side effects", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `{"nested":{"a":1}}`)
		resp.Body.Close()

		stream := openStream(t, f, "/alerts/ops")
		resp2 := submitAlert(t, f, "/alerts/ops", `{"severity":"low"}`)
		resp2.Body.Close()

		ev := stream.nextDataFrame(t)
		assert.Equal(t, "low", ev.Data["severity"])
	})
}

func TestStreamEndpoint(t *testing.T) {
	t.Run("replays fresh alert then tails live submissions", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `{"severity":"high"}`)
		resp.Body.Close()

		stream := openStream(t, f, "/alerts/ops")
		assert.Equal(t, "text/event-stream", stream.resp.Header.Get("Content-Type"))

		first := stream.nextDataFrame(t)
		assert.Equal(t, "high", first.Data["severity"])
		assert.False(t, first.ReceivedAt.IsZero())

		resp = submitAlert(t, f, "/alerts/ops", `{"severity":"low"}`)
		resp.Body.Close()

		second := stream.nextDataFrame(t)
		assert.Equal(t, "low", second.Data["severity"])
		assert.True(t, second.ReceivedAt.After(first.ReceivedAt))
	})

	t.Run("replay carries the original ingestion timestamp", func(t *testing.T) {
		f := newRelayFixture(t)

		before := time.Now().UTC()
		resp := submitAlert(t, f, "/alerts/ops", `{"severity":"high"}`)
		resp.Body.Close()
		after := time.Now().UTC()

		stream := openStream(t, f, "/alerts/ops")
		ev := stream.nextDataFrame(t)
		assert.False(t, ev.ReceivedAt.Before(before))
		assert.False(t, ev.ReceivedAt.After(after))
	})

	t.Run("no replay on an empty group", func(t *testing.T) {
		f := newRelayFixture(t, alerts.WithKeepAliveInterval(30*time.Millisecond))

		stream := openStream(t, f, "/alerts/ops")

		// With nothing cached the first frame must be a keep-alive comment.
		line := stream.nextLine(t)
		assert.Equal(t, ": keep-alive", line)
	})

	t.Run("groups are isolated end to end", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/billing", `{"severity":"high"}`)
		resp.Body.Close()

		stream := openStream(t, f, "/alerts/ops")
		resp = submitAlert(t, f, "/alerts/ops", `{"severity":"low"}`)
		resp.Body.Close()

		// The only frame the ops subscriber sees is the ops alert.
		ev := stream.nextDataFrame(t)
		assert.Equal(t, "low", ev.Data["severity"])
	})

	t.Run("keep-alives arrive on an idle stream", func(t *testing.T) {
		f := newRelayFixture(t, alerts.WithKeepAliveInterval(20*time.Millisecond))

		stream := openStream(t, f, "/alerts/ops")
		for range 3 {
			assert.Equal(t, ": keep-alive", stream.nextLine(t))
			assert.Equal(t, "", stream.nextLine(t))
		}
	})

	t.Run("stream payload round-trips the submitted alert", func(t *testing.T) {
		f := newRelayFixture(t)

		resp := submitAlert(t, f, "/alerts/ops", `{"severity":"high","count":3,"ratio":0.5}`)
		resp.Body.Close()

		stream := openStream(t, f, "/alerts/ops")
		ev := stream.nextDataFrame(t)
		assert.Equal(t, "high", ev.Data["severity"])
		assert.Equal(t, float64(3), ev.Data["count"])
		assert.Equal(t, 0.5, ev.Data["ratio"])
	})
}
