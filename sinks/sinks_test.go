package sinks

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(iteration int, kvs ...interface{}) *core.Record {
	r := core.NewRecord(iteration, "", len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		r.Set(kvs[i].(string), kvs[i+1])
	}
	return r
}

func TestFormats(t *testing.T) {
	r := record(0, "b", 1, "a", []interface{}{1, 2}, "c", "x,y")

	bs, err := JSON(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[1,2],"c":"x,y"}`, string(bs))

	bs, err = NewJSON(2)(record(0, "a", 1))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(bs))

	bs, err = YAML(record(0, "b", 1, "a", "x"))
	require.NoError(t, err)
	assert.Equal(t, "---\nb: 1\na: x", string(bs))

	bs, err = CSV(r)
	require.NoError(t, err)
	assert.Equal(t, `1,"[1,2]","x,y"`, string(bs))
}

func TestFormatter(t *testing.T) {
	r := registry.New()
	RegisterFormats(r)
	assert.ElementsMatch(t, []string{JSONFormat, JSONPrettyFormat, YAMLFormat, CSVFormat}, r.Names(registry.Formats))

	f, err := Formatter(r, JSONFormat)
	require.NoError(t, err)
	bs, err := f(record(0, "a", 1))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(bs))

	r.SetDefault(JSONIndentDefault, 4)
	f, err = Formatter(r, JSONFormat)
	require.NoError(t, err)
	bs, err = f(record(0, "a", 1))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", string(bs))

	_, err = Formatter(r, "xml")
	assert.True(t, core.IsConfigurationError(err))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	require.NoError(t, w.Record(ctx, record(0, "a", 1)))
	require.NoError(t, w.Record(ctx, record(1, "a", 2)))
	assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n", buf.String())

	err := NewWriter(failingWriter{}, CSV).Record(ctx, record(0, "a", 1))
	assert.True(t, core.IsResourceError(err))
}

func TestTee(t *testing.T) {
	ctx := context.Background()
	var b1, b2 bytes.Buffer
	tee := Tee{NewWriter(&b1, nil), NewWriter(&b2, CSV)}
	require.NoError(t, tee.Record(ctx, record(0, "a", 1, "b", "x")))
	assert.Equal(t, "{\"a\":1,\"b\":\"x\"}\n", b1.String())
	assert.Equal(t, "1,x\n", b2.String())

	tee = Tee{NewWriter(failingWriter{}, nil), NewWriter(&b2, nil)}
	assert.Error(t, tee.Record(ctx, record(0, "a", 1)))
	assert.Equal(t, "1,x\n", b2.String())
}

func TestBolt(t *testing.T) {
	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "records.db")

	s, err := OpenBolt(filename, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBoltBucket, s.Bucket)
	for i := 0; i < 12; i++ {
		require.NoError(t, s.Record(ctx, record(i, "n", i)))
	}
	require.NoError(t, s.Close())

	s, err = OpenBolt(filename, "")
	require.NoError(t, err)
	defer s.Close()

	var seen []int
	err = s.Each(ctx, func(iteration int, values map[string]interface{}) error {
		seen = append(seen, iteration)
		assert.Equal(t, float64(iteration), values["n"])
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, seen)

	stop := errors.New("stop")
	n := 0
	err = s.Each(ctx, func(int, map[string]interface{}) error {
		n++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, n)
}

func TestSQL(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "records.sqlite")

	s, err := OpenSQL(ctx, "sqlite", dsn, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSQLTable, s.Table)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, record(i, "n", i)))
	}
	g := record(2, "n", 20)
	g.Group = "big"
	require.NoError(t, s.Record(ctx, g))
	require.NoError(t, s.Close())

	s, err = OpenSQL(ctx, "sqlite", dsn, "")
	require.NoError(t, err)
	defer s.Close()

	var (
		seen []int
		ns   []float64
	)
	err = s.Each(ctx, func(iteration int, values map[string]interface{}) error {
		seen = append(seen, iteration)
		ns = append(ns, values["n"].(float64))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
	assert.Equal(t, []float64{0, 1, 20, 3, 4}, ns)
}

func TestSQLBadConfig(t *testing.T) {
	ctx := context.Background()
	_, err := OpenSQL(ctx, "oracle", "x", "")
	assert.True(t, core.IsConfigurationError(err))

	_, err = OpenSQL(ctx, "sqlite", filepath.Join(t.TempDir(), "x.sqlite"), "records; drop")
	assert.True(t, core.IsConfigurationError(err))
}

func TestWebSocket(t *testing.T) {
	got := make(chan string, 2)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, bs, err := conn.ReadMessage()
			if err != nil {
				close(got)
				return
			}
			got <- string(bs)
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := DialWebSocket(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, record(0, "a", 1)))
	require.NoError(t, s.Record(ctx, record(1, "a", 2)))
	require.NoError(t, s.Close())

	var msgs []string
	for msg := range got {
		msgs = append(msgs, msg)
	}
	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`}, msgs)
}

func TestWebSocketRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := DialWebSocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	assert.True(t, core.IsResourceError(err))
}

func TestParseTopic(t *testing.T) {
	tests := []struct {
		in    string
		topic string
		qos   byte
	}{
		{"records", "records", 0},
		{"records:1", "records", 1},
		{"a/b:2", "a/b", 2},
		{"a:3", "a:3", 0},
		{"a:b", "a:b", 0},
	}
	for _, tt := range tests {
		topic, qos := ParseTopic(tt.in)
		assert.Equal(t, tt.topic, topic, tt.in)
		assert.Equal(t, tt.qos, qos, tt.in)
	}
}

type token struct {
	mqtt.Token
	err error
}

func (t *token) Wait() bool   { return true }
func (t *token) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload string
}

// client records publications.
type client struct {
	mqtt.Client
	err  error
	msgs []published
}

func (c *client) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.msgs = append(c.msgs, published{topic, qos, string(payload.([]byte))})
	return &token{err: c.err}
}

func TestMQTT(t *testing.T) {
	ctx := context.Background()
	s := NewMQTT(MQTTOptions{
		Broker:   "tcp://localhost:1883",
		ClientID: "test",
		Topic:    "records:1",
	}, YAML)
	assert.Equal(t, "records", s.Topic)
	assert.Equal(t, byte(1), s.QoS)

	c := &client{}
	s.Client = c
	require.NoError(t, s.Record(ctx, record(0, "a", 1)))
	assert.Equal(t, []published{{"records", 1, "---\na: 1"}}, c.msgs)

	c.err = errors.New("broker is sad")
	err := s.Record(ctx, record(1, "a", 2))
	assert.True(t, core.IsResourceError(err))
}
