package demoserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/egisf/egisf/internal/demoserver"
	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/interfaces"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/notify"
	"github.com/egisf/egisf/internal/webclient"
)

func newSink(t *testing.T, slow time.Duration) (*demoserver.DemoServer, *httptest.Server) {
	t.Helper()
	cfg := demoserver.DefaultConfig()
	cfg.SlowDelay = slow
	cfg.MaxRecorded = 2
	s := demoserver.NewDemoServer(cfg, interfaces.NewTestLogger(t, false))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dispatch(t *testing.T, target string, timeout time.Duration, passed bool) model.Notification {
	t.Helper()
	logger := interfaces.NewTestLogger(t, false)
	client, err := webclient.NewNetHTTPClient(webclient.Config{}, logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	in := gate.ScoreInputs{Economic: 75, Social: 65, Environmental: 55, Risk: 45, Sustainability: 60, NPV: 8.5}
	if !passed {
		in.Risk = 90
	}
	ev := model.Evaluation{
		ID:          "ev-1",
		Project:     model.ProjectInfo{Name: "Northern Hospital", Sector: "health", Budget: 20},
		Inputs:      in,
		Decision:    gate.NewEvaluator(gate.DefaultConfig()).Evaluate(in),
		EvaluatedAt: time.Now(),
	}

	d := notify.NewDispatcher(notify.Config{URL: target + demoserver.WebhookPath, Timeout: timeout}, client, logger)
	return d.Dispatch(context.Background(), notify.NewPayload(ev))
}

func TestSink_OK_AcknowledgesDecision(t *testing.T) {
	s, ts := newSink(t, time.Second)

	n := dispatch(t, ts.URL, time.Second, true)
	require.Equal(t, model.NotificationDelivered, n.Kind)
	assert.True(t, gjson.GetBytes(n.Response, "received").Bool())
	assert.Equal(t, "approved", gjson.GetBytes(n.Response, "decision").String())

	n = dispatch(t, ts.URL, time.Second, false)
	assert.Equal(t, "returned", gjson.GetBytes(n.Response, "decision").String())

	got := s.Received()
	require.Len(t, got, 2)
	assert.Equal(t, "Northern Hospital", got[0].ProjectName)
	assert.True(t, got[0].Passed)
	assert.False(t, got[1].Passed)
}

func TestSink_ErrorMode(t *testing.T) {
	s, ts := newSink(t, time.Second)
	require.NoError(t, s.SetMode(demoserver.ModeError))

	n := dispatch(t, ts.URL, time.Second, true)
	assert.Equal(t, model.NotificationHTTPError, n.Kind)
	assert.Equal(t, http.StatusInternalServerError, n.StatusCode)
	assert.Len(t, s.Received(), 1)
}

func TestSink_SlowModeTimesOut(t *testing.T) {
	s, ts := newSink(t, 2*time.Second)
	require.NoError(t, s.SetMode(demoserver.ModeSlow))

	n := dispatch(t, ts.URL, 50*time.Millisecond, true)
	assert.Equal(t, model.NotificationTimeout, n.Kind)
}

func TestSink_HistoryIsCapped(t *testing.T) {
	s, ts := newSink(t, time.Second)

	for i := 0; i < 3; i++ {
		dispatch(t, ts.URL, time.Second, true)
	}
	assert.Len(t, s.Received(), 2)
}

func TestSink_RejectsNonJSON(t *testing.T) {
	_, ts := newSink(t, time.Second)

	resp, err := http.Post(ts.URL+demoserver.WebhookPath, "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Get(ts.URL + demoserver.WebhookPath)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}

func TestSink_ControlEndpoints(t *testing.T) {
	s, ts := newSink(t, time.Second)

	resp, err := http.PostForm(ts.URL+"/demo/mode", url.Values{"mode": {"error"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, demoserver.ModeError, s.Mode())

	resp, err = http.PostForm(ts.URL+"/demo/mode", url.Values{"mode": {"sideways"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	dispatch(t, ts.URL, time.Second, true)

	resp, err = http.Get(ts.URL + "/demo/received")
	require.NoError(t, err)
	var received []demoserver.Received
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&received))
	resp.Body.Close()
	assert.Len(t, received, 1)

	resp, err = http.Get(ts.URL + "/demo/control")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/demo/reset", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, demoserver.ModeOK, s.Mode())
	assert.Empty(t, s.Received())
}
