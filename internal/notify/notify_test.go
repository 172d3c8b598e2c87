package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []Email
	fail  error
	delay time.Duration
}

func (r *recordingSender) Send(ctx context.Context, email Email) error {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.sent = append(r.sent, email)
	return nil
}

func TestRender_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		subject string
		want    []string
	}{
		{
			name:    "welcome",
			msg:     Message{Kind: KindWelcome, RecipientMail: "ada@example.com", RecipientName: "Ada"},
			subject: "Welcome to Tech Innovators Club!",
			want:    []string{"Welcome to Tech Innovators Club, Ada!"},
		},
		{
			name:    "approved",
			msg:     Message{Kind: KindProjectApproved, RecipientMail: "ada@example.com", RecipientName: "Ada", ProjectTitle: "Solar Tracker"},
			subject: "Your Project Has Been Approved!",
			want:    []string{"Congratulations, Ada!", "Solar Tracker"},
		},
		{
			name:    "rejected with reason",
			msg:     Message{Kind: KindProjectRejected, RecipientMail: "ada@example.com", RecipientName: "Ada", ProjectTitle: "Solar Tracker", Reason: "Missing demo"},
			subject: "Project Submission Update",
			want:    []string{"Solar Tracker", "Reason:", "Missing demo"},
		},
		{
			name:    "liked",
			msg:     Message{Kind: KindProjectLiked, RecipientMail: "ada@example.com", RecipientName: "Ada", ProjectTitle: "Solar Tracker", ActorName: "Linus"},
			subject: "Someone Liked Your Project!",
			want:    []string{"<strong>Linus</strong> liked your project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := Render(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", email.To)
			assert.Equal(t, tt.subject, email.Subject)
			for _, w := range tt.want {
				assert.Contains(t, email.HTML, w)
			}
		})
	}
}

func TestRender_RejectedWithoutReasonOmitsReason(t *testing.T) {
	email, err := Render(Message{Kind: KindProjectRejected, RecipientMail: "a@b.c", ProjectTitle: "X"})
	require.NoError(t, err)
	assert.NotContains(t, email.HTML, "Reason:")
}

func TestRender_EscapesUserContent(t *testing.T) {
	email, err := Render(Message{Kind: KindProjectApproved, RecipientMail: "a@b.c", RecipientName: "<script>alert(1)</script>", ProjectTitle: "X"})
	require.NoError(t, err)
	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(Message{Kind: "unknown", RecipientMail: "a@b.c"})
	assert.Error(t, err)

	_, err = Render(Message{Kind: KindWelcome})
	assert.Error(t, err)
}

func TestAsyncNotifier_Delivers(t *testing.T) {
	sender := &recordingSender{}
	n := NewAsyncNotifier(sender, time.Second)

	n.Notify(Message{Kind: KindWelcome, RecipientMail: "one@example.com"})
	n.Notify(Message{Kind: KindWelcome, RecipientMail: "two@example.com"})
	n.Wait()

	require.Len(t, sender.sent, 2)
	assert.ElementsMatch(t, []string{"one@example.com", "two@example.com"}, []string{sender.sent[0].To, sender.sent[1].To})
}

func TestAsyncNotifier_FailuresAreSwallowed(t *testing.T) {
	sender := &recordingSender{fail: errors.New("smtp down")}
	n := NewAsyncNotifier(sender, time.Second)

	assert.NotPanics(t, func() {
		n.Notify(Message{Kind: KindWelcome, RecipientMail: "one@example.com"})
		n.Notify(Message{Kind: "bogus", RecipientMail: "one@example.com"})
		n.Wait()
	})
	assert.Empty(t, sender.sent)
}

func TestAsyncNotifier_Timeout(t *testing.T) {
	sender := &recordingSender{delay: time.Second}
	n := NewAsyncNotifier(sender, 20*time.Millisecond)

	start := time.Now()
	n.Notify(Message{Kind: KindWelcome, RecipientMail: "slow@example.com"})
	n.Wait()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Empty(t, sender.sent)
}

func TestResendSender_Send(t *testing.T) {
	var got resendRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	s, err := NewResendSender("re_key", "Club <club@example.com>")
	require.NoError(t, err)
	s.endpoint = server.URL

	err = s.Send(context.Background(), Email{To: "ada@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_key", auth)
	assert.Equal(t, "Club <club@example.com>", got.From)
	assert.Equal(t, []string{"ada@example.com"}, got.To)
	assert.Equal(t, "Hi", got.Subject)
}

func TestResendSender_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	s, err := NewResendSender("re_key", "club@example.com")
	require.NoError(t, err)
	s.endpoint = server.URL

	err = s.Send(context.Background(), Email{To: "ada@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
	assert.Contains(t, err.Error(), "422")
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("log", "", "")
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)

	_, err = NewSender("resend", "", "club@example.com")
	assert.Error(t, err)

	_, err = NewSender("carrier-pigeon", "", "")
	assert.Error(t, err)
}
