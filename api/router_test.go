package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurant-concierge/catalog"
	"github.com/imkonsowa/restaurant-concierge/chat"
	"github.com/imkonsowa/restaurant-concierge/intake"
	"github.com/imkonsowa/restaurant-concierge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const allowedOrigin = "https://restaurantaihelper.com"

type stubSubmitter struct {
	mu    sync.Mutex
	calls []models.Reservation
}

func (s *stubSubmitter) SubmitReservation(_ context.Context, r models.Reservation) intake.AckStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, r)
	return intake.AckReceived
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubSubmitter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := catalog.New(models.Facts{
		Hours:     "5pm-10pm daily",
		Address:   "1 Main St",
		Parking:   "street parking",
		DressCode: "casual",
	}, []models.MenuItem{
		{Name: "Tofu Bowl", IsVegan: true},
		{Name: "Steak"},
	})
	require.NoError(t, err)

	submitter := &stubSubmitter{}
	server := NewServer(chat.NewEngine(c), submitter, []string{allowedOrigin}, zaptest.NewLogger(t))

	return server.Router(), submitter
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestChatQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"vegan", `{"message":"  any vegan options?  "}`, http.StatusOK,
			`{"reply":"Vegan dishes: Tofu Bowl. Please confirm with staff for severe allergies."}`},
		{"hours", `{"message":"what time do you open"}`, http.StatusOK, `{"reply":"We're open 5pm-10pm daily."}`},
		{"reservation", `{"message":"party of four tonight"}`, http.StatusOK,
			`{"reply":"` + chat.ReservationPrompt + `","followup":"reservation_intake"}`},
		{"empty", `{"message":""}`, http.StatusBadRequest, `{"error":"message required"}`},
		{"whitespace", `{"message":"   \n\t "}`, http.StatusBadRequest, `{"error":"message required"}`},
		{"missing", `{}`, http.StatusBadRequest, `{"error":"message required"}`},
		{"not a string", `{"message":42}`, http.StatusBadRequest, `{"error":"message required"}`},
		{"malformed", `{"message":`, http.StatusBadRequest, `{"error":"message required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/chat/query", tt.body, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestIntakeReservation(t *testing.T) {
	r, submitter := newTestRouter(t)

	w := do(r, http.MethodPost, "/intake/reservation",
		`{"name":"Ada","partySize":4,"when":"Fri 7pm","phone":"555-0100","id":"client-chosen"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"received"}`, w.Body.String())

	require.Len(t, submitter.calls, 1)
	got := submitter.calls[0]
	assert.Equal(t, "Ada", got.Name.String())
	assert.Equal(t, models.Loose("4"), got.PartySize)
	assert.Equal(t, "555-0100", got.Phone.String())
	assert.Empty(t, got.ID)
}

func TestIntakeReservation_CompositeValues(t *testing.T) {
	r, submitter := newTestRouter(t)

	w := do(r, http.MethodPost, "/intake/reservation", `{"name":{"first":"Ada"},"partySize":[4]}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"received"}`, w.Body.String())

	require.Len(t, submitter.calls, 1)
	got := submitter.calls[0]
	assert.Equal(t, models.Loose(`{"first":"Ada"}`), got.Name)
	assert.Equal(t, models.Loose(`[4]`), got.PartySize)
}

func TestIntakeReservation_EmptyBody(t *testing.T) {
	r, submitter := newTestRouter(t)

	w := do(r, http.MethodPost, "/intake/reservation", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"received"}`, w.Body.String())
	assert.Len(t, submitter.calls, 1)
}

func TestIntakeReservation_MalformedBody(t *testing.T) {
	r, submitter := newTestRouter(t)

	w := do(r, http.MethodPost, "/intake/reservation", `{"name":`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, submitter.calls)
}

func TestCORS(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"message":"hours?"}`

	w := do(r, http.MethodPost, "/chat/query", body, map[string]string{"Origin": allowedOrigin})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodPost, "/chat/query", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/chat/query", body, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "reply")

	w = do(r, http.MethodOptions, "/chat/query", "", map[string]string{
		"Origin":                        allowedOrigin,
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Less(t, w.Code, 300)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/chat/query", `{"message":"where are you"}`, nil)

	w := do(r, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `concierge_chat_intents_total{intent="location"`)
}

func TestChatSocket(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"is there parking"}`)))
	var reply chat.Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "Parking: street parking.", reply.Reply)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":" "}`)))
	var failure ErrorResponse
	require.NoError(t, conn.ReadJSON(&failure))
	assert.Equal(t, msgMessageRequired, failure.Error)
}

func TestChatSocket_OversizedFrame(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	message := `{"message":"` + strings.Repeat("a", 2*maxFrameBytes) + `"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var reply chat.Reply
	err = conn.ReadJSON(&reply)
	require.Error(t, err)
	var netErr net.Error
	assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), "connection should be closed, not idle")
	assert.Empty(t, reply.Reply)
}

func TestChatSocket_RejectsOrigin(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReplyJSONShape(t *testing.T) {
	data, err := json.Marshal(chat.Reply{Reply: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"hi"}`, string(data))
}
