package stream

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/boxtx/annotate"
)

// Publisher is the part of mqtt.Client the Streamer uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer plays a Timeline back over MQTT, one Frame per video frame.
type Streamer struct {
	client Publisher
	topic  string
	qos    byte
	period time.Duration
}

// NewStreamer creates a Streamer that publishes to topic at fps frames per
// second.
func NewStreamer(client Publisher, topic string, qos byte, fps float64) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.qos = qos
	s.period = time.Duration(float64(time.Second) / fps)
	return s
}

// SendFrame publishes one frame and waits for delivery.
func (s *Streamer) SendFrame(f *Frame) error {
	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.topic, s.qos, false, b)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish frame %d: %w", f.Index, err)
	}
	return nil
}

// Play sends every Timeline frame at the stream rate. It stops early when
// ctx is done.
func (s *Streamer) Play(ctx context.Context, tl *annotate.Timeline) error {
	publishTimer := time.NewTicker(s.period)
	defer publishTimer.Stop()

	for i, boxes := range tl.Frames {
		if err := s.SendFrame(NewFrame(tl.Start+i, boxes)); err != nil {
			return err
		}
		if i == len(tl.Frames)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-publishTimer.C:
		}
	}

	log.Printf("Streamed %d frames to %s", tl.Len(), s.topic)
	return nil
}
