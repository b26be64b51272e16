package sinks

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Comcast/datagen/core"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTOptions says how to reach a broker.
type MQTTOptions struct {
	// Broker is like "tcp://localhost:1883".
	Broker    string
	ClientID  string
	Username  string
	Password  string
	KeepAlive time.Duration

	// Topic can end in ":QOS".
	Topic string
	QoS   byte

	// Quiesce is how long (in milliseconds) Close waits for work
	// to finish.
	Quiesce uint
}

// MQTT publishes each formatted record to a topic.
type MQTT struct {
	Client mqtt.Client
	Topic  string
	QoS    byte
	Format core.Formatter

	quiesce uint
}

// NewMQTT makes an MQTT sink with a client that isn't connected yet.
func NewMQTT(o MQTTOptions, format core.Formatter) *MQTT {
	mqtt.ERROR = log.New(os.Stderr, "mqtt.error ", 0)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(o.Broker)
	opts.SetClientID(o.ClientID)
	if 0 < o.KeepAlive {
		opts.SetKeepAlive(o.KeepAlive)
	}
	opts.Username = o.Username
	opts.Password = o.Password
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("warning: MQTT connection lost: %s", err)
	}

	topic, qos := ParseTopic(o.Topic)
	if qos == 0 {
		qos = o.QoS
	}
	if format == nil {
		format = JSON
	}
	return &MQTT{
		Client:  mqtt.NewClient(opts),
		Topic:   topic,
		QoS:     qos,
		Format:  format,
		quiesce: o.Quiesce,
	}
}

// Connect connects to the broker.
func (s *MQTT) Connect(ctx context.Context) error {
	if t := s.Client.Connect(); t.Wait() && t.Error() != nil {
		return &core.ResourceError{Resource: "mqtt", Err: t.Error()}
	}
	return nil
}

// Record publishes the record and waits for the broker.
func (s *MQTT) Record(ctx context.Context, r *core.Record) error {
	bs, err := s.Format(r)
	if err != nil {
		return err
	}
	t := s.Client.Publish(s.Topic, s.QoS, false, bs)
	t.Wait()
	if err := t.Error(); err != nil {
		return &core.ResourceError{Resource: "mqtt:" + s.Topic, Err: err}
	}
	return nil
}

// Close disconnects.
func (s *MQTT) Close() error {
	s.Client.Disconnect(s.quiesce)
	return nil
}

// ParseTopic extracts a QoS from a topic of the form TOPIC:QOS.
func ParseTopic(s string) (string, byte) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s, 0
	}
	var qos byte
	if _, err := fmt.Sscanf(s[i+1:], "%d", &qos); err != nil || 2 < qos {
		return s, 0
	}
	return s[:i], qos
}
