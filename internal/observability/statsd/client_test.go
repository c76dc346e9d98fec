package statsd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		metric string
		global map[string]string
		local  map[string]string
		want   string
	}{
		{name: "plain", metric: "http.requests", want: "http.requests:1|c"},
		{name: "prefixed", prefix: "gradebook", metric: "http.requests", want: "gradebook.http.requests:1|c"},
		{name: "slashes and spaces", metric: " auth/sign out ", want: "auth_sign_out:1|c"},
		{name: "blank name", metric: " . ", want: ""},
		{
			name:   "local tags override global",
			metric: "http.requests",
			global: map[string]string{"env": "prod", " service ": " web "},
			local:  map[string]string{"env": "stage", "": "ignored", "status": "2xx"},
			want:   "http.requests:1|c|#env:stage,service:web,status:2xx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Line(tt.prefix, tt.metric, "1|c", tt.global, tt.local))
		})
	}
}

func TestNew_DisabledWithoutAddress(t *testing.T) {
	c, err := New(context.Background(), Config{Address: "  "})
	require.NoError(t, err)
	assert.Nil(t, c)

	// A nil client is a usable sink.
	var sink Sink = c
	sink.Count("x", 1, nil)
	sink.Timing("y", time.Second, nil)
	require.NoError(t, c.Close())
}

func TestClient_SendsDatagrams(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp not available: %v", err)
	}
	defer pc.Close()

	c, err := New(context.Background(), Config{
		Address: pc.LocalAddr().String(),
		Prefix:  ".gradebook.",
		Tags:    map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	read := func() string {
		buf := make([]byte, 512)
		require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
		n, _, readErr := pc.ReadFrom(buf)
		require.NoError(t, readErr)
		return string(buf[:n])
	}

	c.Count("http.requests", 2, map[string]string{"route": "page"})
	assert.Equal(t, "gradebook.http.requests:2|c|#env:test,route:page", read())

	c.Timing("http.request_duration", 1500*time.Microsecond, nil)
	assert.Equal(t, "gradebook.http.request_duration:1.5|ms|#env:test", read())

	require.NoError(t, c.Close())
	c.Count("after.close", 1, nil)
}
